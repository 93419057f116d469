package entity

import "encoding/json"

func (that PlayerRating) MarshalJSON() ([]byte, error) {
	return json.Marshal(RecordOf(that))
}

func (that *PlayerRating) UnmarshalJSON(data []byte) error {
	var record PlayerRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return err
	}

	rating, err := record.Rating()
	if err != nil {
		return err
	}

	*that = rating
	return nil
}
