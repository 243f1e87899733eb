// Package roles maps designation codes onto the policy predicates that gate
// the workflow. The codes are a small closed set assigned by the HR master
// data system; anything outside it has no access to management surfaces.
package roles

// Designation codes recognized by the Employee Voice workflow.
const (
	DesignationAdmin          = "462"
	DesignationWelfareOfficer = "508"
	DesignationAsstAdmin      = "1639"
	DesignationCEO            = "555"
	DesignationHRManager      = "525"
	DesignationHRExecutive    = "1665"
)

var validDesignations = map[string]struct{}{
	DesignationAdmin:          {},
	DesignationWelfareOfficer: {},
	DesignationAsstAdmin:      {},
	DesignationCEO:            {},
	DesignationHRManager:      {},
	DesignationHRExecutive:    {},
}

var hrAdminDesignations = map[string]struct{}{
	DesignationAdmin:     {},
	DesignationAsstAdmin: {},
	DesignationCEO:       {},
}

// CanManage reports whether the designation may create forms and view
// management screens.
func CanManage(designationID string) bool {
	_, ok := validDesignations[designationID]
	return ok
}

// CanTag reports whether the designation may tag responsible persons.
// Tagging is reserved for Welfare Officers.
func CanTag(designationID string) bool {
	return designationID == DesignationWelfareOfficer
}

// CanApprove reports whether the designation may approve or reject forms
// and tag batches.
func CanApprove(designationID string) bool {
	_, ok := hrAdminDesignations[designationID]
	return ok
}
