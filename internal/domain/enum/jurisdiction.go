package enum

import "encoding/json"

// Jurisdiction identifies one of the taxes stacked on a subcheck
type Jurisdiction int

const (
	JurisdictionFood        Jurisdiction = 0
	JurisdictionAlcohol     Jurisdiction = 1
	JurisdictionGST         Jurisdiction = 2
	JurisdictionPST         Jurisdiction = 3
	JurisdictionHST         Jurisdiction = 4
	JurisdictionQST         Jurisdiction = 5
	JurisdictionRoom        Jurisdiction = 6
	JurisdictionMerchandise Jurisdiction = 7
	JurisdictionVAT         Jurisdiction = 8
)

var jurisdictionNames = []string{"Food", "Alcohol", "GST", "PST", "HST", "QST", "Room", "Merchandise", "VAT"}

// Jurisdictions lists every jurisdiction in reporting order
var Jurisdictions = []Jurisdiction{
	JurisdictionFood, JurisdictionAlcohol, JurisdictionGST, JurisdictionPST,
	JurisdictionHST, JurisdictionQST, JurisdictionRoom, JurisdictionMerchandise,
	JurisdictionVAT,
}

func (j Jurisdiction) String() string {
	return nameOf(jurisdictionNames, int(j), "Food")
}

func (j Jurisdiction) MarshalJSON() ([]byte, error) {
	return json.Marshal(j.String())
}

func (j *Jurisdiction) UnmarshalJSON(data []byte) error {
	i, err := decodeEnum(data, jurisdictionNames)
	if err != nil {
		return err
	}
	*j = Jurisdiction(i)
	return nil
}
