// Package translate formats user visible messages in the locale of the
// environment.
package translate

import (
	"sync"

	"github.com/charmbracelet/log"
	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/message"
)

var (
	mutex   sync.Mutex
	printer *message.Printer
)

// current returns the active printer, matching it to the environment
// locales on first use.
func current() *message.Printer {
	mutex.Lock()
	defer mutex.Unlock()

	if printer != nil {
		return printer
	}

	locales, err := locale.GetLocales()
	if err != nil {
		log.Warn("locale unavailable", "err", err)
	}

	if len(locales) == 0 {
		locales = []string{"en-US"}
	}

	printer = message.NewPrinter(message.MatchLanguage(locales...))

	return printer
}

// SetLocale replaces the environment locales with an explicit list,
// most preferred first.
func SetLocale(locales ...string) {
	if len(locales) == 0 {
		locales = []string{"en-US"}
	}

	mutex.Lock()
	printer = message.NewPrinter(message.MatchLanguage(locales...))
	mutex.Unlock()
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return current().Sprintf(key, args...)
}
