package marketplace

import (
	"regexp"
	"strings"
)

var (
	legacyIDPattern = regexp.MustCompile(`^\d+$`)                   //nolint:gochecknoglobals
	itemURLPattern  = regexp.MustCompile(`/itm/(?:[^/?#]+/)?(\d+)`) //nolint:gochecknoglobals
)

// NormalizeItemID приводит id к виду Browse API: v1|<legacy>|0.
// Принимает уже нормализованный id, legacy id и ссылку на лот.
func NormalizeItemID(raw string) string {
	id := strings.TrimSpace(raw)

	if strings.HasPrefix(id, "v1|") {
		return id
	}

	if m := itemURLPattern.FindStringSubmatch(id); m != nil {
		id = m[1]
	}

	if legacyIDPattern.MatchString(id) {
		return "v1|" + id + "|0"
	}

	return id
}
