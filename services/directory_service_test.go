package services

import (
	"errors"
	"testing"
	"time"

	"github.com/go-ldap/ldap/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"supply-portal/config"
	"supply-portal/models"
)

type fakeConn struct {
	serviceDN   string
	userBindErr error
	searchRes   *ldap.SearchResult
	searchErr   error
	binds       []string
	closed      bool
}

func (f *fakeConn) Bind(username, password string) error {
	f.binds = append(f.binds, username)
	if username == f.serviceDN {
		return nil
	}
	return f.userBindErr
}

func (f *fakeConn) Search(req *ldap.SearchRequest) (*ldap.SearchResult, error) {
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.searchRes, nil
}

func (f *fakeConn) Close() error {
	f.closed = true
	return nil
}

func testDirectoryConfig() *config.Config {
	return &config.Config{
		LDAPURL:              "ldap://primary.example.org",
		LDAPBindDN:           "cn=svc,dc=example,dc=org",
		LDAPBindPassword:     "svc-secret",
		LDAPFallbackURL:      "ldap://fallback.example.org",
		LDAPFallbackBindDN:   "cn=svc2,dc=example,dc=org",
		LDAPFallbackPassword: "svc2-secret",
		LDAPBaseDN:           "dc=example,dc=org",
		LDAPLoginDomain:      "example.org",
		AdminEmployeeNumbers: "1001, 2002",
		RequestTimeout:       time.Second,
	}
}

func jdoeResult() *ldap.SearchResult {
	return &ldap.SearchResult{
		Entries: []*ldap.Entry{{
			DN: "cn=John Doe,ou=people,dc=example,dc=org",
			Attributes: []*ldap.EntryAttribute{
				ldap.NewEntryAttribute("displayName", []string{"John Doe"}),
				ldap.NewEntryAttribute("mail", []string{"jdoe@example.org"}),
				ldap.NewEntryAttribute("department", []string{"3145-UCIPO"}),
				ldap.NewEntryAttribute("employeeNumber", []string{"5555"}),
			},
		}},
	}
}

func TestAuthenticateSuccess(t *testing.T) {
	cfg := testDirectoryConfig()
	svc := NewDirectoryService(cfg)

	conn := &fakeConn{serviceDN: cfg.LDAPBindDN, searchRes: jdoeResult()}
	svc.dial = func(url string) (directoryConn, error) { return conn, nil }

	user, err := svc.Authenticate("jdoe", "correct")
	require.NoError(t, err)

	assert.Equal(t, "jdoe", user.Username)
	assert.Equal(t, "John Doe", user.FullName)
	assert.Equal(t, "3145-UCIPO", user.Department)
	assert.Equal(t, "jdoe@example.org", user.Email)
	assert.Empty(t, user.CostCenter, "cost center is never sourced from the directory")
	assert.False(t, user.IsAdmin, "5555 is not in the allow-list")
	assert.Equal(t, cfg.LDAPBindDN, conn.binds[0])
	assert.Equal(t, "jdoe@example.org", conn.binds[1], "verify bind uses the domain-qualified login, not the DN")
	assert.True(t, conn.closed)
}

func TestAuthenticateAdminAllowList(t *testing.T) {
	cfg := testDirectoryConfig()
	cfg.AdminEmployeeNumbers = "5555"
	svc := NewDirectoryService(cfg)
	svc.dial = func(url string) (directoryConn, error) {
		return &fakeConn{serviceDN: cfg.LDAPBindDN, searchRes: jdoeResult()}, nil
	}

	user, err := svc.Authenticate("jdoe", "correct")
	require.NoError(t, err)
	assert.True(t, user.IsAdmin)
}

func TestAuthenticateFallbackTriedOnce(t *testing.T) {
	cfg := testDirectoryConfig()
	svc := NewDirectoryService(cfg)

	var dialed []string
	svc.dial = func(url string) (directoryConn, error) {
		dialed = append(dialed, url)
		if url == cfg.LDAPURL {
			return nil, errors.New("connection refused")
		}
		return &fakeConn{serviceDN: cfg.LDAPFallbackBindDN, searchRes: jdoeResult()}, nil
	}

	_, err := svc.Authenticate("jdoe", "correct")
	require.NoError(t, err)
	assert.Equal(t, []string{cfg.LDAPURL, cfg.LDAPFallbackURL}, dialed)
}

func TestAuthenticateBindFailedBothEndpoints(t *testing.T) {
	cfg := testDirectoryConfig()
	svc := NewDirectoryService(cfg)

	var dialed []string
	svc.dial = func(url string) (directoryConn, error) {
		dialed = append(dialed, url)
		return nil, errors.New("connection refused")
	}

	_, err := svc.Authenticate("jdoe", "correct")
	require.Error(t, err)

	var authErr *models.AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "bind failed", authErr.Reason)
	assert.Len(t, dialed, 2, "fallback attempted exactly once")
}

func TestAuthenticateUserNotFound(t *testing.T) {
	cfg := testDirectoryConfig()
	svc := NewDirectoryService(cfg)
	svc.dial = func(url string) (directoryConn, error) {
		return &fakeConn{serviceDN: cfg.LDAPBindDN, searchRes: &ldap.SearchResult{}}, nil
	}

	_, err := svc.Authenticate("nobody", "whatever")
	var authErr *models.AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "user not found", authErr.Reason)
}

func TestAuthenticateInvalidCredentials(t *testing.T) {
	cfg := testDirectoryConfig()
	svc := NewDirectoryService(cfg)
	svc.dial = func(url string) (directoryConn, error) {
		return &fakeConn{
			serviceDN:   cfg.LDAPBindDN,
			searchRes:   jdoeResult(),
			userBindErr: errors.New("invalid credentials (49)"),
		}, nil
	}

	_, err := svc.Authenticate("jdoe", "wrong")
	var authErr *models.AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "invalid credentials", authErr.Reason)
}

func TestAuthenticateSkipVerify(t *testing.T) {
	cfg := testDirectoryConfig()
	cfg.LDAPSkipVerify = true
	svc := NewDirectoryService(cfg)

	conn := &fakeConn{
		serviceDN:   cfg.LDAPBindDN,
		searchRes:   jdoeResult(),
		userBindErr: errors.New("should never be attempted"),
	}
	svc.dial = func(url string) (directoryConn, error) { return conn, nil }

	_, err := svc.Authenticate("jdoe", "anything")
	require.NoError(t, err)
	assert.Len(t, conn.binds, 1, "only the service bind runs when verification is bypassed")
}

func TestNormalizeAttributesExactCase(t *testing.T) {
	record := normalizeAttributes(map[string][]string{
		"displayName":    {"Jane Roe"},
		"mail":           {"jroe@example.org"},
		"department":     {"2200-FARMA"},
		"employeeNumber": {"1001"},
	})

	assert.Equal(t, "Jane Roe", record.fullName)
	assert.Equal(t, "jroe@example.org", record.email)
	assert.Equal(t, "2200-FARMA", record.department)
	assert.Equal(t, "1001", record.employeeNumber)
}

func TestNormalizeAttributesLoweredShape(t *testing.T) {
	record := normalizeAttributes(map[string][]string{
		"displayname":    {"Jane Roe"},
		"mail":           {"jroe@example.org"},
		"department":     {"2200-FARMA"},
		"employeenumber": {"1001"},
	})

	assert.Equal(t, "Jane Roe", record.fullName)
	assert.Equal(t, "1001", record.employeeNumber)
}

func TestNormalizeAttributesFallbackOrder(t *testing.T) {
	record := normalizeAttributes(map[string][]string{
		"cn":                {"J. Roe"},
		"userPrincipalName": {"jroe@corp.example.org"},
		"departmentNumber":  {"2200"},
		"employeeID":        {"77"},
	})

	assert.Equal(t, "J. Roe", record.fullName)
	assert.Equal(t, "jroe@corp.example.org", record.email)
	assert.Equal(t, "2200", record.department)
	assert.Equal(t, "77", record.employeeNumber)
}

func TestNormalizeAttributesEmptyValues(t *testing.T) {
	record := normalizeAttributes(map[string][]string{
		"displayName": {},
		"cn":          {"Backup Name"},
	})

	assert.Equal(t, "Backup Name", record.fullName)
	assert.Empty(t, record.email)
}

func TestLoginIdentity(t *testing.T) {
	assert.Equal(t, "jdoe@example.org", loginIdentity("example.org", "jdoe"))
	assert.Equal(t, "CORP\\jdoe", loginIdentity("CORP", "jdoe"))
	assert.Equal(t, "jdoe", loginIdentity("", "jdoe"))
}

func TestIsAdminEmployee(t *testing.T) {
	assert.True(t, isAdminEmployee("1001", "1001, 2002"))
	assert.True(t, isAdminEmployee("2002", "1001, 2002"))
	assert.False(t, isAdminEmployee("100", "1001, 2002"), "exact match only, no prefixes")
	assert.False(t, isAdminEmployee("", "1001, ,2002"))
	assert.False(t, isAdminEmployee("1001", ""))
}
