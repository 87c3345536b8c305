// ABOUTME: Decodes the four Douban wire shapes into one subjects list
// ABOUTME: Bare arrays, {data}, {subjects} and {tags} all normalize here

package douban

import (
	"encoding/json"

	"vodsearch-api/core/domain"
)

// decodeSubjects accepts the three subject-carrying shapes Douban serves:
// a bare array (chart top_list), {"data": [...]} (new_search_subjects)
// and {"subjects": [...]} (search_subjects).
func decodeSubjects(raw []byte) ([]domain.DoubanSubject, error) {
	var bare []domain.DoubanSubject
	if err := json.Unmarshal(raw, &bare); err == nil {
		return nonNilSubjects(bare), nil
	}

	var wrapped struct {
		Data     []domain.DoubanSubject `json:"data"`
		Subjects []domain.DoubanSubject `json:"subjects"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, err
	}
	if wrapped.Data != nil {
		return wrapped.Data, nil
	}
	return nonNilSubjects(wrapped.Subjects), nil
}

// decodeTags accepts {"tags": [...]}.
func decodeTags(raw []byte) ([]string, error) {
	var wrapped struct {
		Tags []string `json:"tags"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, err
	}
	if wrapped.Tags == nil {
		return []string{}, nil
	}
	return wrapped.Tags, nil
}

func nonNilSubjects(s []domain.DoubanSubject) []domain.DoubanSubject {
	if s == nil {
		return []domain.DoubanSubject{}
	}
	return s
}
