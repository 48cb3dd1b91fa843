package metrics

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestMSE(t *testing.T) {
	tests := []struct {
		name      string
		yTrue     *mat.VecDense
		yPred     *mat.VecDense
		want      float64
		tolerance float64
		wantErr   bool
	}{
		{
			name:      "perfect prediction",
			yTrue:     mat.NewVecDense(5, []float64{1.0, 2.0, 3.0, 4.0, 5.0}),
			yPred:     mat.NewVecDense(5, []float64{1.0, 2.0, 3.0, 4.0, 5.0}),
			want:      0.0,
			tolerance: 1e-10,
		},
		{
			name:      "simple case",
			yTrue:     mat.NewVecDense(4, []float64{1.0, 2.0, 3.0, 4.0}),
			yPred:     mat.NewVecDense(4, []float64{1.5, 2.5, 2.5, 3.5}),
			want:      0.25,
			tolerance: 1e-10,
		},
		{
			name:    "dimension mismatch",
			yTrue:   mat.NewVecDense(3, []float64{1.0, 2.0, 3.0}),
			yPred:   mat.NewVecDense(2, []float64{1.0, 2.0}),
			wantErr: true,
		},
		{
			name:    "empty vectors",
			yTrue:   &mat.VecDense{},
			yPred:   &mat.VecDense{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MSE(tt.yTrue, tt.yPred)
			if (err != nil) != tt.wantErr {
				t.Errorf("MSE() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && math.Abs(got-tt.want) > tt.tolerance {
				t.Errorf("MSE() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRMSE(t *testing.T) {
	yTrue := mat.NewVecDense(4, []float64{1, 2, 3, 4})
	yPred := mat.NewVecDense(4, []float64{1.5, 2.5, 2.5, 3.5})
	got, err := RMSE(yTrue, yPred)
	if err != nil {
		t.Fatalf("RMSE failed: %v", err)
	}
	if math.Abs(got-0.5) > 1e-10 {
		t.Errorf("RMSE = %v, want 0.5", got)
	}
}

func TestMAE(t *testing.T) {
	yTrue := mat.NewVecDense(3, []float64{1, 2, 3})
	yPred := mat.NewVecDense(3, []float64{2, 2, 1})
	got, err := MAE(yTrue, yPred)
	if err != nil {
		t.Fatalf("MAE failed: %v", err)
	}
	if math.Abs(got-1) > 1e-10 {
		t.Errorf("MAE = %v, want 1", got)
	}
}

func TestR2(t *testing.T) {
	yTrue := mat.NewVecDense(4, []float64{1, 2, 3, 4})

	perfect, err := R2(yTrue, yTrue)
	if err != nil {
		t.Fatalf("R2 failed: %v", err)
	}
	if math.Abs(perfect-1) > 1e-10 {
		t.Errorf("R2 for perfect prediction = %v, want 1", perfect)
	}

	constant := mat.NewVecDense(4, []float64{2.5, 2.5, 2.5, 2.5})
	zero, err := R2(yTrue, constant)
	if err != nil {
		t.Fatalf("R2 failed: %v", err)
	}
	if math.Abs(zero) > 1e-10 {
		t.Errorf("R2 for mean prediction = %v, want 0", zero)
	}

	if _, err := R2(constant, yTrue); err == nil {
		t.Error("constant response should error (zero total sum of squares)")
	}
}
