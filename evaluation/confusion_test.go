package evaluation

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestNewConfusionMatrix(t *testing.T) {
	tests := []struct {
		name            string
		yTrue           []float64
		yPred           []float64
		want            ConfusionMatrix
		wantAccuracy    float64
		wantSensitivity float64
		wantSpecificity float64
		wantErr         bool
	}{
		{
			name:            "Perfect predictions",
			yTrue:           []float64{1, 0, 1, 0},
			yPred:           []float64{1, 0, 1, 0},
			want:            ConfusionMatrix{TP: 2, TN: 2},
			wantAccuracy:    1.0,
			wantSensitivity: 1.0,
			wantSpecificity: 1.0,
		},
		{
			name:            "All wrong",
			yTrue:           []float64{1, 0},
			yPred:           []float64{0, 1},
			want:            ConfusionMatrix{FP: 1, FN: 1},
			wantAccuracy:    0.0,
			wantSensitivity: 0.0,
			wantSpecificity: 0.0,
		},
		{
			name:            "Mixed outcome",
			yTrue:           []float64{1, 1, 0, 0, 1, 0},
			yPred:           []float64{1, 0, 0, 1, 1, 0},
			want:            ConfusionMatrix{TP: 2, TN: 2, FP: 1, FN: 1},
			wantAccuracy:    4.0 / 6.0,
			wantSensitivity: 2.0 / 3.0,
			wantSpecificity: 2.0 / 3.0,
		},
		{
			name:    "Length mismatch",
			yTrue:   []float64{1, 0},
			yPred:   []float64{1},
			wantErr: true,
		},
		{
			name:    "Non-binary label",
			yTrue:   []float64{0.5},
			yPred:   []float64{1},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewConfusionMatrix(
				mat.NewVecDense(len(tt.yTrue), tt.yTrue),
				mat.NewVecDense(len(tt.yPred), tt.yPred),
			)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewConfusionMatrix() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got != tt.want {
				t.Errorf("NewConfusionMatrix() = %+v, want %+v", got, tt.want)
			}
			if got.Total() != len(tt.yTrue) {
				t.Errorf("Total() = %d, want %d", got.Total(), len(tt.yTrue))
			}
			if math.Abs(got.Accuracy()-tt.wantAccuracy) > 1e-12 {
				t.Errorf("Accuracy() = %v, want %v", got.Accuracy(), tt.wantAccuracy)
			}
			if math.Abs(got.Sensitivity()-tt.wantSensitivity) > 1e-12 {
				t.Errorf("Sensitivity() = %v, want %v", got.Sensitivity(), tt.wantSensitivity)
			}
			if math.Abs(got.Specificity()-tt.wantSpecificity) > 1e-12 {
				t.Errorf("Specificity() = %v, want %v", got.Specificity(), tt.wantSpecificity)
			}
		})
	}
}
