package money

import (
	"encoding/json"
	"strconv"
)

// Amount is an int64 amount that tolerates the loose price encodings seen
// at the JSON boundary: 25000, "25000" and "Rp 25.000" all decode to the
// same value. Decoding never fails; garbage decodes to zero.
type Amount int64

func (a *Amount) UnmarshalJSON(b []byte) error {
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		*a = 0
		return nil
	}
	*a = Amount(Parse(raw))
	return nil
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatInt(int64(a), 10)), nil
}

func (a Amount) Int64() int64 { return int64(a) }
