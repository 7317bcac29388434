package epidemic

import (
	"fmt"
	"strings"
)

// InfectionRecord is the single-line, fixed-field textual record emitted for
// one infection event. Spatial and demographic context is supplied by the
// host and place collaborators; unknown references render as -1 and a
// missing place as type 'X'.
type InfectionRecord struct {
	Day       int
	DiseaseID int

	HostID    int
	HostAge   float64
	SickLeave bool

	InfectorID          int
	InfectorAge         float64
	InfectorSymptomatic bool
	InfectorSickLeave   bool
	InfectorExposureDay int

	PlaceID      int
	PlaceType    byte
	PlaceSubtype byte
	PlaceSize    int

	Lat, Lon         float64
	HomeLat, HomeLon float64

	ExposureDay int
	Dates       TransitionDates

	// Verbose-only fields.
	Distance              float64
	AdminRegion           int64
	WillBeSymptomatic     bool
	Infectivity           float64
	InfectivityMultiplier float64
	Symptoms              float64
}

// Render produces the record line. Verbose appends the infector distance
// metric and administrative-region identifier along with the current course
// snapshot.
func (r InfectionRecord) Render(verbose bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "day %d dis %d host %d age %.3f sick_leave %s",
		r.Day, r.DiseaseID, r.HostID, r.HostAge, boolField(r.SickLeave))
	fmt.Fprintf(&b, " infector %d inf_age %.3f inf_symp %s inf_sick_leave %s",
		r.InfectorID, r.InfectorAge, boolField(r.InfectorSymptomatic), boolField(r.InfectorSickLeave))
	fmt.Fprintf(&b, " at %c place %d subtype %c size %d",
		r.PlaceType, r.PlaceID, r.PlaceSubtype, r.PlaceSize)
	fmt.Fprintf(&b, " lat %.3f lon %.3f home_lat %.3f home_lon %.3f",
		r.Lat, r.Lon, r.HomeLat, r.HomeLon)
	fmt.Fprintf(&b, " infector_exp_day %d", r.InfectorExposureDay)
	fmt.Fprintf(&b, " | DATES exp %d inf %d symp %d rec %d sus %d",
		r.ExposureDay, r.Dates.InfectiousStart, r.Dates.SymptomsStart,
		r.Dates.InfectiousEnd, r.Dates.ImmunityEnd)
	if verbose {
		fmt.Fprintf(&b, " dist %.3f admin_region %d", r.Distance, r.AdminRegion)
		fmt.Fprintf(&b, " | will_be_symp %s infect %.3f inf_multp %.3f symp %.3f",
			boolField(r.WillBeSymptomatic), r.Infectivity, r.InfectivityMultiplier, r.Symptoms)
	}
	return b.String()
}

func boolField(v bool) string {
	if v {
		return "1"
	}
	return "0"
}
