package models

// VisitType is the internal enumeration of the two booking categories
type VisitType string

const (
	VisitTypeDay       VisitType = "DAY_VISIT"
	VisitTypeOvernight VisitType = "OVERNIGHT"
)

// Localized labels accepted at the API boundary
const (
	LabelDayVisitAr  = "زيارة نهارية"
	LabelOvernightAr = "مبيت"
	LabelDayVisitEn  = "Day Visit"
	LabelOvernightEn = "Overnight Stay"
)

// VisitTypeFromLabel maps a customer-facing label (or the internal enum name)
// to the internal visit type. Unrecognized labels return ok=false.
func VisitTypeFromLabel(label string) (VisitType, bool) {
	switch label {
	case LabelDayVisitAr, LabelDayVisitEn, string(VisitTypeDay):
		return VisitTypeDay, true
	case LabelOvernightAr, LabelOvernightEn, string(VisitTypeOvernight):
		return VisitTypeOvernight, true
	}
	return "", false
}

// Label returns the localized label for the visit type
func (v VisitType) Label(lang string) string {
	if lang == "en" {
		if v == VisitTypeOvernight {
			return LabelOvernightEn
		}
		return LabelDayVisitEn
	}
	if v == VisitTypeOvernight {
		return LabelOvernightAr
	}
	return LabelDayVisitAr
}

// Valid reports whether v is one of the two known visit types
func (v VisitType) Valid() bool {
	return v == VisitTypeDay || v == VisitTypeOvernight
}
