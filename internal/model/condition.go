package model

import "fmt"

// Condition is the observed physical state of an asset.
type Condition string

const (
	ConditionGood Condition = "good"
	ConditionFair Condition = "fair"
	ConditionPoor Condition = "poor"
)

// ParseCondition validates a condition value coming from the API boundary.
func ParseCondition(s string) (Condition, error) {
	switch Condition(s) {
	case ConditionGood, ConditionFair, ConditionPoor:
		return Condition(s), nil
	}
	return "", fmt.Errorf("unknown condition %q", s)
}

// Availability marks whether an asset is still in service.
type Availability string

const (
	AvailabilityActive         Availability = "active"
	AvailabilityDecommissioned Availability = "decommissioned"
)
