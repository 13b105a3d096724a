package prediction

// StaticModel is a point-only model returning a fixed value, for tests and
// wiring checks.
type StaticModel struct {
	Value float64
	Names []string
	Err   error
}

func (s StaticModel) Predict(x []float64) (float64, error) {
	if s.Err != nil {
		return 0, s.Err
	}
	return s.Value, nil
}

func (s StaticModel) FeatureNames() []string { return s.Names }

// StaticEnsemble is an ensemble whose members each return a fixed value.
type StaticEnsemble struct {
	Value       float64
	MemberPreds []float64
	Names       []string
}

func (s StaticEnsemble) Predict(x []float64) (float64, error) { return s.Value, nil }

func (s StaticEnsemble) FeatureNames() []string { return s.Names }

func (s StaticEnsemble) Members() []Model {
	out := make([]Model, len(s.MemberPreds))
	for i, v := range s.MemberPreds {
		out[i] = StaticModel{Value: v}
	}
	return out
}
