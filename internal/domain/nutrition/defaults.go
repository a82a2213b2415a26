package nutrition

// Defaults describes the daily target used when a user has no goal.
// Macros are derived from calories by energy share and kcal per gram.
type Defaults struct {
	Calories     float64
	ProteinShare float64
	FatShare     float64
	CarbsShare   float64
	Fiber        float64
	Sugar        float64
	Sodium       float64
}

const (
	kcalPerGramProtein = 4
	kcalPerGramFat     = 9
	kcalPerGramCarbs   = 4
)

// StandardDefaults returns the stock 2000 kcal fallback
func StandardDefaults() Defaults {
	return Defaults{
		Calories:     2000,
		ProteinShare: 0.20,
		FatShare:     0.30,
		CarbsShare:   0.50,
		Fiber:        25,
		Sugar:        40,
		Sodium:       2000,
	}
}

// Target expands the defaults into a full nutrient vector
func (d Defaults) Target() Nutrients {
	return Nutrients{
		Calories: d.Calories,
		Protein:  d.Calories * d.ProteinShare / kcalPerGramProtein,
		Fat:      d.Calories * d.FatShare / kcalPerGramFat,
		Carbs:    d.Calories * d.CarbsShare / kcalPerGramCarbs,
		Fiber:    d.Fiber,
		Sugar:    d.Sugar,
		Sodium:   d.Sodium,
	}
}
