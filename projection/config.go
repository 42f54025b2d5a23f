package projection

import (
	"math"
	"slices"
)

// Config describes one tabulation. It must not change once Init has
// started.
type Config struct {
	// XXMax is the upper end of the sampling grid. It is rounded up to a
	// multiple of XXStep.
	XXMax float64 `yaml:"xx_max"`
	// XXStep is the grid spacing.
	XXStep float64 `yaml:"xx_step"`

	// LMax bounds the outer multipole L.
	LMax int `yaml:"l_max"`
	// L lists the tabulated outer multipoles. Empty means 0..LMax.
	L []int `yaml:"L,omitempty"`
	// Multipoles lists the primary multipoles l, strictly increasing.
	Multipoles []int `yaml:"multipoles"`
	// M lists the azimuthal numbers m, strictly increasing and >= 0.
	M []int `yaml:"m"`

	// JL1Cut is the negligibility threshold of the Bessel table.
	JL1Cut float64 `yaml:"j_l1_cut"`
	// JLlmCut is the negligibility threshold of the projection table.
	JLlmCut float64 `yaml:"J_Llm_cut"`

	HasTT bool `yaml:"has_tt"`
	HasEE bool `yaml:"has_ee"`
	HasEB bool `yaml:"has_eb"`

	// ExtendL1UsingM widens the l1 range of every primary multipole by
	// max|m| so that high-m couplings find all their l1.
	ExtendL1UsingM bool `yaml:"extend_l1_using_m"`

	// Workers bounds the fill goroutines; <= 0 uses GOMAXPROCS.
	Workers int `yaml:"workers"`
	// Verbose raises the phase summaries from debug to info level.
	Verbose bool `yaml:"verbose"`
	// MaxTableDoubles bounds the number of float64 stored by both tables,
	// values and spline derivatives together. Zero disables the check.
	MaxTableDoubles int64 `yaml:"max_table_doubles"`
}

// DefaultConfig returns the defaults used by the original code for a
// second-order temperature run. Multipoles must still be set.
func DefaultConfig() Config {
	return Config{
		XXMax:           1000,
		XXStep:          0.5,
		LMax:            4,
		M:               []int{0},
		JL1Cut:          1e-12,
		JLlmCut:         1e-6,
		HasTT:           true,
		MaxTableDoubles: 1 << 28,
	}
}

// Validate reports the first inconsistency in c as a configuration error.
// An L above LMax is reported as a domain error.
func (c Config) Validate() error {
	const op = "Validate"
	switch {
	case !(c.XXStep > 0) || math.IsInf(c.XXStep, 0):
		return configError(op, "xx_step must be positive, got %g", c.XXStep)
	case !(c.XXMax > 0) || math.IsInf(c.XXMax, 0):
		return configError(op, "xx_max must be positive, got %g", c.XXMax)
	case c.LMax < 0:
		return configError(op, "l_max must be non-negative, got %d", c.LMax)
	case len(c.Multipoles) == 0:
		return configError(op, "no primary multipoles: the l1-list would be empty")
	case len(c.M) == 0:
		return configError(op, "no azimuthal numbers m")
	case c.JL1Cut < 0 || c.JLlmCut < 0 || math.IsNaN(c.JL1Cut) || math.IsNaN(c.JLlmCut):
		return configError(op, "cutoffs must be non-negative")
	case !c.HasTT && !c.HasEE && !c.HasEB:
		return configError(op, "no projection function enabled")
	case c.MaxTableDoubles < 0:
		return configError(op, "max_table_doubles must be non-negative")
	}
	if err := increasing(op, "multipoles", c.Multipoles); err != nil {
		return err
	}
	if err := increasing(op, "m", c.M); err != nil {
		return err
	}
	if err := increasing(op, "L", c.L); err != nil {
		return err
	}
	if len(c.L) > 0 && c.L[len(c.L)-1] > c.LMax {
		return domainError(op, "L=%d exceeds l_max=%d", c.L[len(c.L)-1], c.LMax)
	}
	return nil
}

// Ls returns the tabulated outer multipoles.
func (c Config) Ls() []int {
	if len(c.L) > 0 {
		return slices.Clone(c.L)
	}
	ls := make([]int, c.LMax+1)
	for i := range ls {
		ls[i] = i
	}
	return ls
}

// Kinds returns the enabled projection functions in storage order.
func (c Config) Kinds() []Kind {
	var kinds []Kind
	if c.HasTT {
		kinds = append(kinds, TT)
	}
	if c.HasEE {
		kinds = append(kinds, EE)
	}
	if c.HasEB {
		kinds = append(kinds, EB)
	}
	return kinds
}

func increasing(op, name string, v []int) error {
	for i, x := range v {
		if x < 0 {
			return configError(op, "%s[%d]=%d is negative", name, i, x)
		}
		if i > 0 && x <= v[i-1] {
			return configError(op, "%s must be strictly increasing", name)
		}
	}
	return nil
}
