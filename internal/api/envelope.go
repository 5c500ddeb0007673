package api

import "encoding/xml"

// Version is the SuiteTalk WSDL version spoken by this package.
const Version = "2019_2"

// Namespace URIs declared on every request envelope.
const (
	NSSoapEnv  = "http://schemas.xmlsoap.org/soap/envelope/"
	NSXSI      = "http://www.w3.org/2001/XMLSchema-instance"
	NSMessages = "urn:messages_" + Version + ".platform.webservices.netsuite.com"
	NSCore     = "urn:core_" + Version + ".platform.webservices.netsuite.com"
	NSCommon   = "urn:common_" + Version + ".platform.webservices.netsuite.com"
)

type envelope struct {
	XMLName      xml.Name       `xml:"soapenv:Envelope"`
	XMLNSSoapEnv string         `xml:"xmlns:soapenv,attr"`
	XMLNSXSI     string         `xml:"xmlns:xsi,attr"`
	XMLNSMsgs    string         `xml:"xmlns:platformMsgs,attr"`
	XMLNSCore    string         `xml:"xmlns:platformCore,attr"`
	XMLNSCommon  string         `xml:"xmlns:platformCommon,attr"`
	Header       envelopeHeader `xml:"soapenv:Header"`
	Body         envelopeBody   `xml:"soapenv:Body"`
}

type envelopeHeader struct {
	Items []any
}

type envelopeBody struct {
	Content any
}

func newEnvelope(header []any, body any) *envelope {
	return &envelope{
		XMLNSSoapEnv: NSSoapEnv,
		XMLNSXSI:     NSXSI,
		XMLNSMsgs:    NSMessages,
		XMLNSCore:    NSCore,
		XMLNSCommon:  NSCommon,
		Header:       envelopeHeader{Items: header},
		Body:         envelopeBody{Content: body},
	}
}

// responseEnvelope decodes any SOAP 1.1 response regardless of prefixes.
type responseEnvelope struct {
	XMLName xml.Name `xml:"Envelope"`
	Body    struct {
		Fault *Fault `xml:"Fault"`
		Nodes []Node `xml:",any"`
	} `xml:"Body"`
}

// Fault is a SOAP 1.1 fault.
type Fault struct {
	Code   string `xml:"faultcode"`
	String string `xml:"faultstring"`
	Detail *Node  `xml:"detail"`
}

// DetailCode returns the NetSuite error code carried in the fault detail,
// e.g. INVALID_LOGIN_CREDENTIALS.
func (f *Fault) DetailCode() string {
	if f == nil || f.Detail == nil {
		return ""
	}
	for i := range f.Detail.Nodes {
		if code := f.Detail.Nodes[i].Child("code"); code != nil {
			return code.Text()
		}
	}
	return ""
}

// SearchPreferences is the searchPreferences SOAP header.
type SearchPreferences struct {
	XMLName             xml.Name `xml:"platformMsgs:searchPreferences"`
	BodyFieldsOnly      bool     `xml:"platformMsgs:bodyFieldsOnly"`
	ReturnSearchColumns bool     `xml:"platformMsgs:returnSearchColumns"`
	PageSize            int      `xml:"platformMsgs:pageSize,omitempty"`
}

// ApplicationInfo is the applicationInfo SOAP header.
type ApplicationInfo struct {
	XMLName       xml.Name `xml:"platformMsgs:applicationInfo"`
	ApplicationID string   `xml:"platformMsgs:applicationId"`
}

// RecordRef references a record by type and identifier.
type RecordRef struct {
	XMLName    xml.Name
	XSIType    string `xml:"xsi:type,attr,omitempty"`
	Type       string `xml:"type,attr,omitempty"`
	InternalID string `xml:"internalId,attr,omitempty"`
	ExternalID string `xml:"externalId,attr,omitempty"`
	Name       string `xml:"platformCore:name,omitempty"`
}

// GetRequest is the get operation.
type GetRequest struct {
	XMLName xml.Name  `xml:"platformMsgs:get"`
	BaseRef RecordRef `xml:"platformMsgs:baseRef"`
}

// GetAllRecord names the record type for getAll.
type GetAllRecord struct {
	RecordType string `xml:"recordType,attr"`
}

// GetAllRequest is the getAll operation.
type GetAllRequest struct {
	XMLName xml.Name     `xml:"platformMsgs:getAll"`
	Record  GetAllRecord `xml:"platformMsgs:record"`
}

// SearchValue is one searchValue element of a search field.
type SearchValue struct {
	Type       string `xml:"type,attr,omitempty"`
	InternalID string `xml:"internalId,attr,omitempty"`
	ExternalID string `xml:"externalId,attr,omitempty"`
	Text       string `xml:",chardata"`
}

// SearchField is one constrained field of a basic search record.
type SearchField struct {
	XMLName  xml.Name
	Operator string        `xml:"operator,attr,omitempty"`
	Values   []SearchValue `xml:"platformCore:searchValue"`
}

// SearchRecord is the searchRecord element of a search request.
type SearchRecord struct {
	XMLName xml.Name `xml:"platformMsgs:searchRecord"`
	XSIType string   `xml:"xsi:type,attr"`
	Fields  []SearchField
}

// SearchRequest is the search operation.
type SearchRequest struct {
	XMLName      xml.Name     `xml:"platformMsgs:search"`
	SearchRecord SearchRecord `xml:"platformMsgs:searchRecord"`
}

// SearchMoreWithIDRequest is the searchMoreWithId operation.
type SearchMoreWithIDRequest struct {
	XMLName   xml.Name `xml:"platformMsgs:searchMoreWithId"`
	SearchID  string   `xml:"platformMsgs:searchId"`
	PageIndex int      `xml:"platformMsgs:pageIndex"`
}
