package contract

// Company is the single domain record assembled per place. Absence of a
// value is always the empty string, never a nil or missing field.
type Company struct {
	Company string `json:"company"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Website string `json:"website"`
}

// FieldMap returns the record as an ordered-by-convention column mapping.
// The exporter owns the column order; this only supplies values.
func (c Company) FieldMap() map[string]string {
	return map[string]string{
		"company": c.Company,
		"address": c.Address,
		"city":    c.City,
		"state":   c.State,
		"phone":   c.Phone,
		"email":   c.Email,
		"website": c.Website,
	}
}

type ToolRequest struct {
	Tool string         `json:"tool"`
	Args map[string]any `json:"args,omitempty"`
}

type ToolResult struct {
	Tool   string `json:"tool"`
	Result any    `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

// StatusSuccess is the only status emitted on defined paths. Failures are
// either a ToolResult.Error (bad arguments) or a propagated Go error
// (upstream failure); neither is folded into a status string.
const StatusSuccess = "success"

type FindOutput struct {
	Status  string    `json:"status"`
	Count   int       `json:"count"`
	Results []Company `json:"results"`
}

type SaveOutput struct {
	Status string `json:"status"`
	Path   string `json:"path"`
	Count  int    `json:"count"`
}

type FindAndSaveOutput struct {
	Status    string `json:"status"`
	Path      string `json:"path"`
	Count     int    `json:"count"`
	CityState string `json:"city_state"`
}
