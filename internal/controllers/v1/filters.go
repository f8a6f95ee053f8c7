package v1

import (
	"fmt"
	"strings"

	"github.com/ryanuber/go-glob"
	"github.com/shareledger/backend/internal/models"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

func stringFilters(query *gorm.DB, setFields []string, name, email string) *gorm.DB {
	if name != "" {
		query = query.Where("name LIKE ?", fmt.Sprintf("%%%s%%", name))
	} else if slices.Contains(setFields, "Name") {
		query = query.Where("name = ''")
	}

	if email != "" {
		query = query.Where("email LIKE ?", fmt.Sprintf("%%%s%%", email))
	} else if slices.Contains(setFields, "Email") {
		query = query.Where("email = ''")
	}

	return query
}

// searchShareholders matches the search term against name, email and
// mobile of each shareholder. The term is matched case-insensitively
// and supports "*" wildcards; a term without wildcards matches as a
// substring.
func searchShareholders(shareholders []models.Shareholder, search string) []models.Shareholder {
	pattern := strings.ToLower(search)
	if !strings.Contains(pattern, "*") {
		pattern = "*" + pattern + "*"
	}

	matched := make([]models.Shareholder, 0, len(shareholders))
	for _, shareholder := range shareholders {
		if glob.Glob(pattern, strings.ToLower(shareholder.Name)) ||
			glob.Glob(pattern, strings.ToLower(shareholder.Email)) ||
			glob.Glob(pattern, strings.ToLower(shareholder.Mobile)) {
			matched = append(matched, shareholder)
		}
	}

	return matched
}
