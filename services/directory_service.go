package services

import (
	"fmt"
	"log"
	"net"
	"strings"

	"github.com/go-ldap/ldap/v3"

	"supply-portal/config"
	"supply-portal/models"
)

var userAttributes = []string{"displayName", "mail", "department", "employeeNumber"}

type directoryConn interface {
	Bind(username, password string) error
	Search(req *ldap.SearchRequest) (*ldap.SearchResult, error)
	Close() error
}

// DirectoryService authenticates users against the corporate directory:
// bind with a service account, search the entry, re-bind with the user's
// own credentials to verify the password. A fallback endpoint is tried
// exactly once when the primary bind fails.
type DirectoryService struct {
	cfg  *config.Config
	dial func(url string) (directoryConn, error)
}

func NewDirectoryService(cfg *config.Config) *DirectoryService {
	return &DirectoryService{
		cfg: cfg,
		dial: func(url string) (directoryConn, error) {
			conn, err := ldap.DialURL(url, ldap.DialWithDialer(&net.Dialer{Timeout: cfg.RequestTimeout}))
			if err != nil {
				return nil, err
			}
			conn.SetTimeout(cfg.RequestTimeout)
			return conn, nil
		},
	}
}

type directoryEndpoint struct {
	url      string
	bindDN   string
	password string
}

func (s *DirectoryService) endpoints() []directoryEndpoint {
	eps := []directoryEndpoint{
		{s.cfg.LDAPURL, s.cfg.LDAPBindDN, s.cfg.LDAPBindPassword},
	}
	if s.cfg.LDAPFallbackURL != "" {
		eps = append(eps, directoryEndpoint{
			s.cfg.LDAPFallbackURL, s.cfg.LDAPFallbackBindDN, s.cfg.LDAPFallbackPassword,
		})
	}
	return eps
}

func (s *DirectoryService) bindService() (directoryConn, error) {
	var lastErr error
	for _, ep := range s.endpoints() {
		conn, err := s.dial(ep.url)
		if err != nil {
			log.Printf("Directory dial failed for %s: %v", ep.url, err)
			lastErr = err
			continue
		}

		if err := conn.Bind(ep.bindDN, ep.password); err != nil {
			log.Printf("Service bind failed for %s: %v", ep.url, err)
			conn.Close()
			lastErr = err
			continue
		}

		return conn, nil
	}

	return nil, &models.AuthError{Reason: "bind failed", Err: lastErr}
}

// Authenticate runs the bind-search-verify-authorize sequence and
// returns the normalized user record. CostCenter is always empty: the
// user supplies it at checkout, the directory has no notion of it.
func (s *DirectoryService) Authenticate(username, password string) (*models.UserInfo, error) {
	conn, err := s.bindService()
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	req := ldap.NewSearchRequest(
		s.cfg.LDAPBaseDN,
		ldap.ScopeWholeSubtree, ldap.NeverDerefAliases, 1, 0, false,
		fmt.Sprintf("(sAMAccountName=%s)", ldap.EscapeFilter(username)),
		userAttributes,
		nil,
	)

	result, err := conn.Search(req)
	if err != nil {
		return nil, &models.AuthError{Reason: "user not found", Err: err}
	}
	if len(result.Entries) == 0 {
		return nil, &models.AuthError{Reason: "user not found"}
	}

	attrs := map[string][]string{}
	for _, attr := range result.Entries[0].Attributes {
		attrs[attr.Name] = attr.Values
	}
	record := normalizeAttributes(attrs)

	if !s.cfg.LDAPSkipVerify {
		identity := loginIdentity(s.cfg.LDAPLoginDomain, username)
		if err := conn.Bind(identity, password); err != nil {
			return nil, &models.AuthError{Reason: "invalid credentials"}
		}
	}

	return &models.UserInfo{
		Username:   username,
		FullName:   record.fullName,
		Department: record.department,
		Email:      record.email,
		CostCenter: "",
		IsAdmin:    isAdminEmployee(record.employeeNumber, s.cfg.AdminEmployeeNumbers),
	}, nil
}

type directoryRecord struct {
	fullName       string
	email          string
	department     string
	employeeNumber string
}

// normalizeAttributes maps a directory entry to a fixed record regardless
// of how the transport cased the attribute names. Each field has a
// defined fallback order.
func normalizeAttributes(attrs map[string][]string) directoryRecord {
	lowered := map[string]string{}
	for name, values := range attrs {
		if len(values) == 0 {
			continue
		}
		lowered[strings.ToLower(name)] = values[0]
	}

	pick := func(names ...string) string {
		for _, name := range names {
			if v := lowered[name]; v != "" {
				return v
			}
		}
		return ""
	}

	return directoryRecord{
		fullName:       pick("displayname", "cn", "name"),
		email:          pick("mail", "userprincipalname"),
		department:     pick("department", "departmentnumber"),
		employeeNumber: pick("employeenumber", "employeeid"),
	}
}

// loginIdentity builds the bind identity used to verify the password.
// The directory accepts a domain-qualified username here, not the entry
// DN: DOMAIN\user for NetBIOS-style domains, user@domain for DNS-style.
func loginIdentity(domain, username string) string {
	if domain == "" {
		return username
	}
	if strings.Contains(domain, ".") {
		return username + "@" + domain
	}
	return domain + "\\" + username
}

func isAdminEmployee(employeeNumber, allowList string) bool {
	if employeeNumber == "" {
		return false
	}
	for _, entry := range strings.Split(allowList, ",") {
		if strings.TrimSpace(entry) == employeeNumber {
			return true
		}
	}
	return false
}
