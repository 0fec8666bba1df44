package models

// HitLocation is the body area a successful attack lands on
type HitLocation string

const (
	HitLocationBody     HitLocation = "body"
	HitLocationRightLeg HitLocation = "right_leg"
	HitLocationLeftLeg  HitLocation = "left_leg"
	HitLocationRightArm HitLocation = "right_arm"
	HitLocationLeftArm  HitLocation = "left_arm"
	HitLocationHead     HitLocation = "head"
)

// IsValid reports whether l is one of the six body locations
func (l HitLocation) IsValid() bool {
	switch l {
	case HitLocationBody, HitLocationRightLeg, HitLocationLeftLeg,
		HitLocationRightArm, HitLocationLeftArm, HitLocationHead:
		return true
	}
	return false
}

// Display returns a human label
func (l HitLocation) Display() string {
	switch l {
	case HitLocationBody:
		return "Body"
	case HitLocationRightLeg:
		return "Right Leg"
	case HitLocationLeftLeg:
		return "Left Leg"
	case HitLocationRightArm:
		return "Right Arm"
	case HitLocationLeftArm:
		return "Left Arm"
	case HitLocationHead:
		return "Head"
	}
	return string(l)
}
