package routes

import (
	"fmt"
	"net/http"
)

// TermsHandler serves the Terms and Conditions content
func TermsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html")

	html := `
	<!DOCTYPE html>
	<html lang="en">
	<head>
		<meta charset="UTF-8">
		<meta name="viewport" content="width=device-width, initial-scale=1.0">
		<title>Terms and Conditions</title>
	</head>
	<body>
		<h1>Terms and Conditions</h1>
		<p>Please read these Terms and Conditions carefully before using the StudyBuddy app.</p>
		<p>By accessing or using the Service, you agree to be bound by these Terms. We may
		suspend or terminate your access if you violate them.</p>
		<p>Questions? Contact us at <a href="mailto:studybuddy@app.com">studybuddy@app.com</a>.</p>
		<p>Thank you for using StudyBuddy!</p>
	</body>
	</html>
	`
	fmt.Fprint(w, html)
}
