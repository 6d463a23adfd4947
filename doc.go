// Package homegate is a client for the undocumented JSON API behind the
// homegate.ch mobile app.
//
// The backend authenticates callers with a short-lived signature sent in the
// X-App-Id header. The signature is an HMAC over the app identity and the
// current minute, so requests are only accepted while the local clock is
// roughly in sync with the server's. See Signer for the details.
//
// This is not an official API. The signing material ships with the mobile
// app and changes with app releases; when it does, requests start failing
// with authorization errors until the constants here are refreshed. Use
// modest request rates, the operator can and does block clients.
//
// A minimal search:
//
//	client := homegate.NewClient(homegate.Config{})
//	req := homegate.DefaultSearchRequest()
//	req.Query.Location = homegate.Location{Latitude: 47.36667, Longitude: 8.55, Radius: 1000}
//	resp, err := client.Search(ctx, req)
package homegate
