package nutrition

import "math"

// Nutrients is a vector of the tracked nutrition fields.
// Calories are kcal, Sodium is mg, everything else grams.
type Nutrients struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Fat      float64 `json:"fat"`
	Carbs    float64 `json:"carbs"`
	Fiber    float64 `json:"fiber"`
	Sugar    float64 `json:"sugar"`
	Sodium   float64 `json:"sodium"`
}

// Add returns the field-wise sum of n and o
func (n Nutrients) Add(o Nutrients) Nutrients {
	return Nutrients{
		Calories: n.Calories + o.Calories,
		Protein:  n.Protein + o.Protein,
		Fat:      n.Fat + o.Fat,
		Carbs:    n.Carbs + o.Carbs,
		Fiber:    n.Fiber + o.Fiber,
		Sugar:    n.Sugar + o.Sugar,
		Sodium:   n.Sodium + o.Sodium,
	}
}

// Scale multiplies every field by factor
func (n Nutrients) Scale(factor float64) Nutrients {
	return Nutrients{
		Calories: n.Calories * factor,
		Protein:  n.Protein * factor,
		Fat:      n.Fat * factor,
		Carbs:    n.Carbs * factor,
		Fiber:    n.Fiber * factor,
		Sugar:    n.Sugar * factor,
		Sodium:   n.Sodium * factor,
	}
}

// Divide divides every field by d. A non-positive divisor leaves n unchanged.
func (n Nutrients) Divide(d float64) Nutrients {
	if d <= 0 {
		return n
	}
	return n.Scale(1 / d)
}

// Round rounds every field to the given number of decimal places
func (n Nutrients) Round(places int) Nutrients {
	p := math.Pow(10, float64(places))
	r := func(v float64) float64 { return math.Round(v*p) / p }
	return Nutrients{
		Calories: r(n.Calories),
		Protein:  r(n.Protein),
		Fat:      r(n.Fat),
		Carbs:    r(n.Carbs),
		Fiber:    r(n.Fiber),
		Sugar:    r(n.Sugar),
		Sodium:   r(n.Sodium),
	}
}

// IsZero reports whether every field is zero
func (n Nutrients) IsZero() bool {
	return n == Nutrients{}
}

// Validate rejects negative fields
func (n Nutrients) Validate() error {
	for _, v := range []float64{n.Calories, n.Protein, n.Fat, n.Carbs, n.Fiber, n.Sugar, n.Sodium} {
		if v < 0 || math.IsNaN(v) {
			return ErrNegativeNutrient
		}
	}
	return nil
}
