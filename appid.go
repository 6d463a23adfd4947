package homegate

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/binary"
	"math"
	"net/http"
	"strconv"
	"time"
)

// DefaultBaseURL is the production backend the mobile app talks to.
const DefaultBaseURL = "https://api.homegate.ch"

// Signing material extracted from the Android app. All of these values
// change together on app releases, so they live in one block and nowhere
// else.
const (
	defaultUserAgent  = "homegate.ch App Android"
	defaultAppVersion = "Homegate/12.6.0/12060003/Android/30"

	defaultUsername = "hg_android"
	defaultPassword = "6VcGU6ceCFTk8dFm"
)

var defaultSecret = []byte("ABuTZrcTGKN4AwjHed3Hj")

// A Signer produces the X-App-Id value the backend checks on every request,
// along with the rest of the authentication headers. The id is an HMAC-SHA256
// over the app identity and a minute counter, truncated the way HOTP
// truncates a counter MAC, so each id is accepted for roughly a minute
// around the time it was produced.
//
// The zero value is not usable; construct with DefaultSigner and override
// fields as needed. A Signer is safe for concurrent use once constructed.
type Signer struct {
	// Secret is the HMAC key baked into the app binary.
	Secret []byte

	// UserAgent and AppVersion identify the app release the Secret was
	// extracted from. All three must match.
	UserAgent  string
	AppVersion string

	// Username and Password fill the Basic Authorization header.
	Username string
	Password string

	// Now supplies the clock. Defaults to time.Now.
	Now func() time.Time
}

// DefaultSigner returns a Signer loaded with the current app release's
// material.
func DefaultSigner() *Signer {
	return &Signer{
		Secret:     defaultSecret,
		UserAgent:  defaultUserAgent,
		AppVersion: defaultAppVersion,
		Username:   defaultUsername,
		Password:   defaultPassword,
		Now:        time.Now,
	}
}

// AppID returns the signature for the current minute.
func (s *Signer) AppID() (string, error) {
	now := s.Now
	if now == nil {
		now = time.Now
	}
	return s.AppIDAt(now())
}

// AppIDAt returns the signature for an arbitrary instant. The app floors the
// clock to whole seconds as an unsigned 32-bit value before bucketing it into
// minutes, and keeps the sign bit of the truncated MAC, so negative ids are
// possible and valid.
func (s *Signer) AppIDAt(t time.Time) (string, error) {
	if len(s.Secret) == 0 {
		return "", ErrMissingSecret
	}
	if t.IsZero() {
		return "", ErrClockUnavailable
	}

	payload := s.UserAgent + s.AppVersion + timestampBucket(t)

	mac := hmac.New(sha256.New, s.Secret)
	mac.Write([]byte(payload))
	digest := mac.Sum(nil)

	offset := digest[len(digest)-1] & 0xf
	code := int32(binary.BigEndian.Uint32(digest[offset : offset+4]))

	return strconv.FormatInt(int64(code), 10), nil
}

// Headers returns the complete authentication header set for one request.
// The X-App-Id inside is freshly signed, so headers must be produced per
// request rather than cached on the client.
func (s *Signer) Headers() (http.Header, error) {
	appID, err := s.AppID()
	if err != nil {
		return nil, err
	}

	creds := base64.StdEncoding.EncodeToString([]byte(s.Username + ":" + s.Password))

	header := http.Header{}
	header.Set("Authorization", "Basic "+creds)
	header.Set("Accept", "application/json")
	header.Set("X-App-Id", appID)
	header.Set("X-App-Version", s.AppVersion)
	header.Set("User-Agent", s.UserAgent)
	header.Set("Content-Type", "application/json")

	return header, nil
}

// timestampBucket maps an instant to the minute counter the app signs.
func timestampBucket(t time.Time) string {
	secs := uint32(t.UnixMilli() / 1000)
	return strconv.FormatInt(int64(math.Ceil(float64(secs)/60)), 10)
}
