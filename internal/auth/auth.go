// Package auth provides NetSuite SuiteTalk authentication headers.
//
// Element names carry the platformMsgs and platformCore prefixes declared on
// the SOAP envelope by package api.
package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/xml"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SignatureAlgorithm is the only algorithm NetSuite accepts for new integrations.
const SignatureAlgorithm = "HMAC-SHA256"

// Credentials produce the SOAP header element that authenticates a request.
type Credentials interface {
	// Header returns an XML-marshalable header element for a request sent at now.
	Header(now time.Time) any

	// Valid reports whether all required fields are configured.
	Valid() bool
}

// TokenCredentials holds token-based authentication (TBA) secrets.
type TokenCredentials struct {
	Account        string
	ConsumerKey    string
	ConsumerSecret string
	TokenID        string
	TokenSecret    string

	// Nonce overrides nonce generation. Tests use it to get stable signatures.
	Nonce func() string
}

// Signature is the signed part of a token passport.
type Signature struct {
	Algorithm string `xml:"algorithm,attr"`
	Value     string `xml:",chardata"`
}

// TokenPassport is the tokenPassport SOAP header.
type TokenPassport struct {
	XMLName     xml.Name  `xml:"platformMsgs:tokenPassport"`
	Account     string    `xml:"platformCore:account"`
	ConsumerKey string    `xml:"platformCore:consumerKey"`
	Token       string    `xml:"platformCore:token"`
	Nonce       string    `xml:"platformCore:nonce"`
	Timestamp   int64     `xml:"platformCore:timestamp"`
	Signature   Signature `xml:"platformCore:signature"`
}

// Header builds a freshly signed token passport.
func (c *TokenCredentials) Header(now time.Time) any {
	nonce := c.nonce()
	ts := now.Unix()
	return &TokenPassport{
		Account:     c.Account,
		ConsumerKey: c.ConsumerKey,
		Token:       c.TokenID,
		Nonce:       nonce,
		Timestamp:   ts,
		Signature: Signature{
			Algorithm: SignatureAlgorithm,
			Value:     c.Sign(nonce, ts),
		},
	}
}

// Sign computes the passport signature for the given nonce and unix timestamp.
func (c *TokenCredentials) Sign(nonce string, timestamp int64) string {
	base := strings.Join([]string{
		c.Account,
		c.ConsumerKey,
		c.TokenID,
		nonce,
		strconv.FormatInt(timestamp, 10),
	}, "&")
	key := c.ConsumerSecret + "&" + c.TokenSecret

	mac := hmac.New(sha256.New, []byte(key))
	mac.Write([]byte(base))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// Valid reports whether credentials are configured.
func (c *TokenCredentials) Valid() bool {
	return c != nil && c.Account != "" &&
		c.ConsumerKey != "" && c.ConsumerSecret != "" &&
		c.TokenID != "" && c.TokenSecret != ""
}

func (c *TokenCredentials) nonce() string {
	if c.Nonce != nil {
		return c.Nonce()
	}
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// PassportCredentials holds legacy user credentials.
type PassportCredentials struct {
	Account  string
	Email    string
	Password string
	Role     string
}

// RoleRef identifies the role a passport logs in with.
type RoleRef struct {
	InternalID string `xml:"internalId,attr"`
}

// Passport is the passport SOAP header.
type Passport struct {
	XMLName  xml.Name `xml:"platformMsgs:passport"`
	Email    string   `xml:"platformCore:email"`
	Password string   `xml:"platformCore:password"`
	Account  string   `xml:"platformCore:account"`
	Role     *RoleRef `xml:"platformCore:role,omitempty"`
}

// Header returns the passport header; the timestamp is unused.
func (c *PassportCredentials) Header(time.Time) any {
	p := &Passport{
		Email:    c.Email,
		Password: c.Password,
		Account:  c.Account,
	}
	if c.Role != "" {
		p.Role = &RoleRef{InternalID: c.Role}
	}
	return p
}

// Valid reports whether credentials are configured.
func (c *PassportCredentials) Valid() bool {
	return c != nil && c.Account != "" && c.Email != "" && c.Password != ""
}
