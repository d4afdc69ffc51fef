package email

import "fmt"

// QuoteEmail renders the message sent to a client when a quote goes out by
// email.
func QuoteEmail(businessName, quoteNumber, clientName, quoteLink string) (subject, html string) {
	if businessName == "" {
		businessName = "QuoteFlow"
	}
	subject = fmt.Sprintf("Quote %s from %s", quoteNumber, businessName)
	html = fmt.Sprintf(
		`<p>Hi %s,</p>
<p>%s has sent you a quote. You can review and accept it here:</p>
<p><a href="%s">View quote %s</a></p>
<p>This link does not require an account.</p>`,
		clientName, businessName, quoteLink, quoteNumber,
	)
	return subject, html
}

// AcceptedEmail notifies the owner that a client accepted a quote.
func AcceptedEmail(quoteNumber, acceptedName string) (subject, html string) {
	subject = fmt.Sprintf("Quote %s was accepted", quoteNumber)
	who := acceptedName
	if who == "" {
		who = "Your client"
	}
	html = fmt.Sprintf("<p>%s accepted quote %s. Time to get to work.</p>", who, quoteNumber)
	return subject, html
}

// TeamInviteEmail invites someone to join a team.
func TeamInviteEmail(teamName, inviterName string) (subject, html string) {
	subject = fmt.Sprintf("You've been invited to join %s", teamName)
	html = fmt.Sprintf(
		"<p>%s invited you to join the team %s on QuoteFlow. Sign in with this email address to accept.</p>",
		inviterName, teamName,
	)
	return subject, html
}
