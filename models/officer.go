package models

// Officer codes a citizen may book an appointment with. The roster is fixed:
// the District Officer and the Assistant District Officer.
const (
	OfficerDO  = "DO"
	OfficerADO = "ADO"
)

// KnownOfficer reports whether code is one of the two bookable officers.
func KnownOfficer(code string) bool {
	return code == OfficerDO || code == OfficerADO
}
