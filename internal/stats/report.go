package stats

import "strconv"

// Average is a per-type mean feature length. Its JSON form always carries
// exactly one decimal place (900.0, 84.3), matching the report contract.
type Average float64

func (a Average) MarshalJSON() ([]byte, error) {
	return strconv.AppendFloat(nil, float64(a), 'f', 1, 64), nil
}

func (a *Average) UnmarshalJSON(b []byte) error {
	f, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return err
	}
	*a = Average(f)
	return nil
}

// StrandDistribution holds the rounded percentage of '+' and '-' records
// among all records on a recognized strand. Both sides are rounded
// independently, so they need not sum to exactly 100.
type StrandDistribution struct {
	Plus  int `json:"+"`
	Minus int `json:"-,"`
}

// Report is the immutable outcome of one aggregation pass.
type Report struct {
	TotalFeatures      int                `json:"total_features"`
	ByType             map[string]int     `json:"by_type"`
	AvgLength          map[string]Average `json:"avg_length"`
	StrandDistribution StrandDistribution `json:"strand_distribution"`
	FilterType         string             `json:"filter_type,omitempty"`
}
