package notify

import (
	"fmt"

	"github.com/pagewatch/pagewatch/internal/config"
)

// ContentsChanged builds the alert sent when a page was fetched successfully
// but no longer contains the expected text fragment.
func ContentsChanged(site config.Site) (subject, body string) {
	subject = fmt.Sprintf("[pagewatch] %s: expected text missing", site.Name)
	body = fmt.Sprintf(
		"The expected text fragment is no longer present on %s.\n\n"+
			"Site:     %s\n"+
			"Fragment: %q\n\n"+
			"The next check runs after the cooldown of %s.\n",
		site.URL, site.Name, site.TextMatch, site.Cooldown(),
	)
	return subject, body
}

// CheckFailed builds the alert sent after the first consecutive failed check
// of a site. Reason describes what went wrong with the fetch.
func CheckFailed(site config.Site, reason string) (subject, body string) {
	subject = fmt.Sprintf("[pagewatch] %s: check failed", site.Name)
	body = fmt.Sprintf(
		"Checking %s failed.\n\n"+
			"Site:   %s\n"+
			"Reason: %s\n\n"+
			"The check is retried after the cooldown of %s.\n",
		site.URL, site.Name, reason, site.Cooldown(),
	)
	return subject, body
}

// GivingUp builds the final alert sent when a site has failed more times in a
// row than the monitor tolerates. Attempts is the number of consecutive
// failures at the moment of giving up.
func GivingUp(site config.Site, reason string, attempts int) (subject, body string) {
	subject = fmt.Sprintf("[pagewatch] %s: giving up", site.Name)
	body = fmt.Sprintf(
		"Checking %s failed %d times in a row.\n\n"+
			"Site:   %s\n"+
			"Reason: %s\n\n"+
			"No further checks are scheduled for this site until the process is restarted.\n",
		site.URL, attempts, site.Name, reason,
	)
	return subject, body
}
