package regress

import (
	"math"

	"github.com/farxc/fastfood_minwage/internal/survey"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// JointTest is the p-value of the Wald F-test that every listed parameter
// is zero. Names not in the model are ignored; if none are present the
// result is missing.
func JointTest(m *Model, subset []string) survey.Value {
	if m == nil || m.DFResid <= 0 {
		return survey.Missing
	}

	var idx []int
	for _, name := range subset {
		if j, ok := m.index[name]; ok {
			idx = append(idx, j)
		}
	}
	q := len(idx)
	if q == 0 {
		return survey.Missing
	}

	beta := mat.NewVecDense(q, nil)
	v := mat.NewSymDense(q, nil)
	for a, ja := range idx {
		beta.SetVec(a, m.Coefficients[ja])
		for b := a; b < q; b++ {
			v.SetSym(a, b, m.cov.At(ja, idx[b]))
		}
	}

	var chol mat.Cholesky
	if ok := chol.Factorize(v); !ok {
		return survey.Missing
	}
	var vinvBeta mat.VecDense
	if err := chol.SolveVecTo(&vinvBeta, beta); err != nil {
		return survey.Missing
	}
	f := mat.Dot(beta, &vinvBeta) / float64(q)
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return survey.Missing
	}

	dist := distuv.F{D1: float64(q), D2: float64(m.DFResid)}
	return survey.Of(dist.Survival(f))
}
