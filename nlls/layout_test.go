package nlls

import (
	"testing"

	"github.com/Farmhouse121/quantfit/pkg/errors"
)

func TestSplitJoinRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		k, e   int
		params []float64
	}{
		{"no extras", 2, 0, []float64{1.5, -0.3, 0.8}},
		{"one extra", 2, 1, []float64{1.5, -0.3, 0.8, 2.0}},
		{"no regressors", 0, 2, []float64{0.5, 1.0, 3.0}},
		{"many extras", 1, 3, []float64{7, 0.1, 1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			layout, err := NewParamLayout(tt.k, tt.e)
			if err != nil {
				t.Fatalf("NewParamLayout(%d, %d) failed: %v", tt.k, tt.e, err)
			}

			beta, sigma, extra, err := layout.Split(tt.params)
			if err != nil {
				t.Fatalf("Split failed: %v", err)
			}
			if len(beta) != tt.k {
				t.Errorf("beta length = %d, want %d", len(beta), tt.k)
			}
			if len(extra) != tt.e {
				t.Errorf("extra length = %d, want %d", len(extra), tt.e)
			}
			if sigma != tt.params[tt.k] {
				t.Errorf("sigma = %v, want %v", sigma, tt.params[tt.k])
			}

			joined := layout.Join(beta, sigma, extra)
			if len(joined) != len(tt.params) {
				t.Fatalf("Join length = %d, want %d", len(joined), len(tt.params))
			}
			for i := range joined {
				if joined[i] != tt.params[i] {
					t.Errorf("Join[%d] = %v, want %v", i, joined[i], tt.params[i])
				}
			}
		})
	}
}

func TestSplitLengthValidation(t *testing.T) {
	layout, err := NewParamLayout(2, 1)
	if err != nil {
		t.Fatal(err)
	}

	for _, bad := range [][]float64{nil, {1}, {1, 2, 3}, {1, 2, 3, 4, 5}} {
		_, _, _, err := layout.Split(bad)
		if err == nil {
			t.Errorf("Split(len=%d) should fail for layout of length 4", len(bad))
			continue
		}
		var ve *errors.ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("expected ValidationError, got %T", err)
		}
	}
}

func TestSigmaIsLastWhenNoExtras(t *testing.T) {
	layout, _ := NewParamLayout(3, 0)
	beta, sigma, extra, err := layout.Split([]float64{1, 2, 3, 0.5})
	if err != nil {
		t.Fatal(err)
	}
	if sigma != 0.5 {
		t.Errorf("sigma = %v, want 0.5 (params[-1])", sigma)
	}
	if len(beta) != 3 || len(extra) != 0 {
		t.Errorf("beta/extra lengths = %d/%d, want 3/0", len(beta), len(extra))
	}
}

func TestZeroLatentVariablesIsDomainError(t *testing.T) {
	_, err := NewParamLayout(2, -1)
	if err == nil {
		t.Fatal("a layout with zero latent variables should be rejected")
	}
	var de *errors.DomainError
	if !errors.As(err, &de) {
		t.Errorf("expected DomainError, got %T", err)
	}
}

func TestNegativeKIsValidationError(t *testing.T) {
	_, err := NewParamLayout(-1, 0)
	if err == nil {
		t.Fatal("negative K should be rejected")
	}
	var ve *errors.ValidationError
	if !errors.As(err, &ve) {
		t.Errorf("expected ValidationError, got %T", err)
	}
}
