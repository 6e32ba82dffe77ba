package rowhooktest

import (
	log "github.com/sirupsen/logrus"
)

// DisableLogging is a test helper that disables logging (in fact it sets
// its level to panic). It returns a function which when called resets it
// to its previous level. Useful when a test intentionally drives Handle
// down a path that logs a warning and the assertion only cares about the
// returned Decision/error, not the log output:
//
//  func TestFoo(t *testing.T) {
//      defer rowhooktest.DisableLogging()()
//
//      // logging is disabled for the whole test
//  }
func DisableLogging() (reset func()) {
	lvl := log.GetLevel()
	log.SetLevel(log.PanicLevel)
	return func() { log.SetLevel(lvl) }
}
