package response_models

type PagedResponse struct {
	Items    interface{} `json:"items"`
	Total    int64       `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// DisplayableLink is one entry of the editor link list.
type DisplayableLink struct {
	Title string `json:"title"`
	Value string `json:"value"`
}

type KeywordSubmitResponse struct {
	IDs    []string `json:"ids"`
	Titles []string `json:"titles"`
}

type SettingResponse struct {
	Name     string `json:"name"`
	Value    string `json:"value"`
	Default  string `json:"default"`
	Type     string `json:"type"`
	Editable bool   `json:"editable"`
}

type RatingResponse struct {
	Count   int     `json:"count"`
	Sum     int     `json:"sum"`
	Average float64 `json:"average"`
}

type MediaResponse struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}
