// ABOUTME: Video detail shapes returned by the detail service
// ABOUTME: Episodes are plain play URLs extracted from the upstream payload or page

package domain

// VideoInfo carries the descriptive fields of one title.
type VideoInfo struct {
	Title      string `json:"title"`
	Cover      string `json:"cover,omitempty"`
	Desc       string `json:"desc,omitempty"`
	Type       string `json:"type,omitempty"`
	Year       string `json:"year,omitempty"`
	Area       string `json:"area,omitempty"`
	Director   string `json:"director,omitempty"`
	Actor      string `json:"actor,omitempty"`
	Remarks    string `json:"remarks,omitempty"`
	SourceName string `json:"source_name"`
	SourceCode string `json:"source_code"`
}

// VideoDetail is the detail response: a list of episode play URLs plus
// descriptive info. Code is always normalized to 200 on success.
type VideoDetail struct {
	Code      int       `json:"code"`
	Episodes  []string  `json:"episodes"`
	DetailURL string    `json:"detailUrl"`
	VideoInfo VideoInfo `json:"videoInfo"`
}
