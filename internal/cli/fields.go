package cli

import (
	"github.com/spf13/cobra"
)

type fieldKind int

const (
	kindText fieldKind = iota
	kindInt
	kindFloat
)

// fieldSpec liga un flag al campo JSON que viaja al API.
type fieldSpec struct {
	flag     string
	key      string
	kind     fieldKind
	usage    string
	required bool
}

var animalCreateFields = []fieldSpec{
	{flag: "id", key: "id", usage: "animal id (AB-1234); generated when empty"},
	{flag: "name", key: "name", usage: "name", required: true},
	{flag: "species", key: "species", usage: "rabbit, quail, chicken or other", required: true},
	{flag: "breed", key: "breed", usage: "breed"},
	{flag: "color", key: "color", usage: "color"},
	{flag: "sex", key: "sex", usage: "male or female"},
	{flag: "dob", key: "dateOfBirth", usage: "date of birth (YYYY-MM-DD)", required: true},
	{flag: "status", key: "status", usage: "Active, Breeder or Retired"},
	{flag: "notes", key: "notes", usage: "notes"},
	{flag: "image", key: "image", usage: "image URL (see POST /api/uploads)"},
}

var animalUpdateFields = []fieldSpec{
	{flag: "name", key: "name", usage: "name"},
	{flag: "species", key: "species", usage: "species"},
	{flag: "breed", key: "breed", usage: "breed"},
	{flag: "color", key: "color", usage: "color"},
	{flag: "sex", key: "sex", usage: "male or female"},
	{flag: "dob", key: "dateOfBirth", usage: "date of birth (YYYY-MM-DD)"},
	{flag: "status", key: "status", usage: "Active, Breeder or Retired"},
	{flag: "notes", key: "notes", usage: "notes"},
	{flag: "image", key: "image", usage: "image URL"},
}

var breedingCreateFields = []fieldSpec{
	{flag: "id", key: "id", usage: "breeding id; generated when empty"},
	{flag: "male", key: "maleId", usage: "male animal id", required: true},
	{flag: "female", key: "femaleId", usage: "female animal id", required: true},
	{flag: "date", key: "breedingDate", usage: "breeding date (YYYY-MM-DD)", required: true},
	{flag: "gestation", key: "gestationDays", kind: kindInt, usage: "gestation days (default 31)"},
	{flag: "expected", key: "expectedDate", usage: "expected date; computed when empty"},
	{flag: "notes", key: "notes", usage: "notes"},
}

var breedingUpdateFields = []fieldSpec{
	{flag: "status", key: "status", usage: "pending, successful or failed"},
	{flag: "actual", key: "actualDate", usage: "actual birth date (YYYY-MM-DD)"},
	{flag: "offspring", key: "offspring", kind: kindInt, usage: "number of offspring"},
	{flag: "notes", key: "notes", usage: "notes"},
}

var hatchingCreateFields = []fieldSpec{
	{flag: "id", key: "id", usage: "hatching id; generated when empty"},
	{flag: "name", key: "name", usage: "batch name", required: true},
	{flag: "eggs", key: "totalEggs", kind: kindInt, usage: "total eggs", required: true},
	{flag: "start", key: "startDate", usage: "start date (YYYY-MM-DD)", required: true},
	{flag: "incubation", key: "incubationDays", kind: kindInt, usage: "incubation days (default 21)"},
	{flag: "expected", key: "expectedHatchDate", usage: "expected hatch date; computed when empty"},
	{flag: "temperature", key: "temperature", kind: kindFloat, usage: "temperature °C"},
	{flag: "humidity", key: "humidity", kind: kindFloat, usage: "humidity %"},
	{flag: "notes", key: "notes", usage: "notes"},
}

var hatchingUpdateFields = []fieldSpec{
	{flag: "status", key: "status", usage: "incubating, hatching or completed"},
	{flag: "actual", key: "actualHatchDate", usage: "actual hatch date (YYYY-MM-DD)"},
	{flag: "hatched", key: "hatchedEggs", kind: kindInt, usage: "hatched eggs"},
	{flag: "temperature", key: "temperature", kind: kindFloat, usage: "temperature °C"},
	{flag: "humidity", key: "humidity", kind: kindFloat, usage: "humidity %"},
	{flag: "notes", key: "notes", usage: "notes"},
}

func bindFields(cmd *cobra.Command, specs []fieldSpec) {
	flags := cmd.Flags()
	for _, s := range specs {
		switch s.kind {
		case kindInt:
			flags.Int(s.flag, 0, s.usage)
		case kindFloat:
			flags.Float64(s.flag, 0, s.usage)
		default:
			flags.String(s.flag, "", s.usage)
		}
		if s.required {
			_ = cmd.MarkFlagRequired(s.flag)
		}
	}
}

// collectFields sólo incluye los flags que el usuario pasó: en un update
// ausente significa "no tocar".
func collectFields(cmd *cobra.Command, specs []fieldSpec) (map[string]any, error) {
	flags := cmd.Flags()
	fields := make(map[string]any, len(specs))
	for _, s := range specs {
		if !flags.Changed(s.flag) {
			continue
		}
		var (
			v   any
			err error
		)
		switch s.kind {
		case kindInt:
			v, err = flags.GetInt(s.flag)
		case kindFloat:
			v, err = flags.GetFloat64(s.flag)
		default:
			v, err = flags.GetString(s.flag)
		}
		if err != nil {
			return nil, err
		}
		fields[s.key] = v
	}
	return fields, nil
}
