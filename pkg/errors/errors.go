// Package errors provides common, reusable error values and helpers.
package errors

import (
	"errors"
	"fmt"
)

// Common errors
var (
	ErrUserNotFound         = errors.New("user not found")
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrDealNotFound         = errors.New("deal not found")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrAccountDisabled      = errors.New("admin account is deactivated")
	ErrAdminNotFound        = errors.New("admin user not found")
	ErrAdminAlreadyExists   = errors.New("admin user already exists")

	// Analysis request errors
	ErrAnalysisRequestNotFound = errors.New("analysis request not found")
	ErrNoAnalysisResult        = errors.New("no analysis result returned from external service")

	// Localization errors
	ErrLanguageNotFound    = errors.New("language not found")
	ErrLanguageExists      = errors.New("language code already exists")
	ErrDefaultLanguage     = errors.New("operation not allowed on the default language")
	ErrLanguageDisabled    = errors.New("cannot set a disabled language as default")
	ErrTranslationNotFound = errors.New("translation not found")

	// Landing page content errors
	ErrContentNotFound    = errors.New("landing page content not found")
	ErrInvalidContentType = errors.New("invalid content type")

	// Report errors
	ErrSectionNotFound      = errors.New("report section not found")
	ErrDocumentNotFound     = errors.New("report document not found")
	ErrDocumentLimitReached = errors.New("section already has maximum allowed documents")
	ErrInvalidAccessTier    = errors.New("invalid access tier")

	// Article errors
	ErrArticleNotFound   = errors.New("article not found")
	ErrArticleSlugExists = errors.New("article slug already exists")
	ErrArticlesDisabled  = errors.New("articles are disabled")

	// App settings
	ErrSettingNotFound = errors.New("app setting not found")

	// Enum parsing
	ErrInvalidStatus = errors.New("invalid status")
	ErrInvalidTier   = errors.New("invalid user tier")
)

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
