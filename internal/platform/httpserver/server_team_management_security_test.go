package httpserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	authentities "requisite/contexts/identity-access/auth-service/domain/entities"
)

func seedOrgOwner(t *testing.T, server *Server) (authentities.User, string, int) {
	t.Helper()
	org := server.tracking.Store.SeedOrganization("Acme")
	owner := server.auth.Store.SeedUser("local", "owner", "s3cret", false)
	server.auth.Store.SeedOrganizationMembership(owner,
		authentities.EntityRef{ID: org.ID, Name: org.Name}, authentities.OrganizationRoleOwner)
	return owner, signTokenFor(t, server, owner), org.ID
}

func TestMemberAddRequiresOwner(t *testing.T) {
	server := newTestServer()
	org := server.tracking.Store.SeedOrganization("Acme")
	member := server.auth.Store.SeedUser("local", "alice", "s3cret", false)
	server.auth.Store.SeedOrganizationMembership(member,
		authentities.EntityRef{ID: org.ID, Name: org.Name}, authentities.OrganizationRoleMember)
	token := signTokenFor(t, server, member)

	rr := doJSON(server, http.MethodPost,
		fmt.Sprintf("/api/organizations/%d/members", org.ID), token,
		`{"user":{"userName":"bob"},"role":"MEMBER"}`)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestMemberAddEntityMismatchIsConflict(t *testing.T) {
	server := newTestServer()
	_, token, orgID := seedOrgOwner(t, server)
	server.auth.Store.SeedUser("local", "bob", "s3cret", false)

	rr := doJSON(server, http.MethodPost,
		fmt.Sprintf("/api/organizations/%d/members", orgID), token,
		fmt.Sprintf(`{"user":{"userName":"bob"},"entity":{"id":%d},"role":"MEMBER"}`, orgID+100))
	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d body=%s", rr.Code, rr.Body.String())
	}

	var resp struct {
		ConflictReason string `json:"conflictReason"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ConflictReason == "" {
		t.Fatalf("expected a conflictReason, got %s", rr.Body.String())
	}

	// Nothing may persist from the rejected request.
	list := doJSON(server, http.MethodGet,
		fmt.Sprintf("/api/organizations/%d/members", orgID), token, "")
	var members []json.RawMessage
	if err := json.Unmarshal(list.Body.Bytes(), &members); err != nil {
		t.Fatalf("decode member list: %v", err)
	}
	if len(members) != 1 {
		t.Fatalf("expected only the seeded owner membership, got %d entries", len(members))
	}
}

func TestMemberAddAndUpdateByOwner(t *testing.T) {
	server := newTestServer()
	_, token, orgID := seedOrgOwner(t, server)
	server.auth.Store.SeedUser("local", "bob", "s3cret", false)

	created := doJSON(server, http.MethodPost,
		fmt.Sprintf("/api/organizations/%d/members", orgID), token,
		`{"user":{"userName":"bob"},"role":"MEMBER"}`)
	if created.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", created.Code, created.Body.String())
	}

	var member struct {
		ID   int    `json:"id"`
		Role string `json:"role"`
	}
	if err := json.Unmarshal(created.Body.Bytes(), &member); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if member.Role != "MEMBER" {
		t.Fatalf("expected MEMBER role, got %q", member.Role)
	}

	updated := doJSON(server, http.MethodPut,
		fmt.Sprintf("/api/organizations/%d/members/%d", orgID, member.ID), token,
		`{"user":{"userName":"bob"},"role":"OWNER"}`)
	if updated.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", updated.Code, updated.Body.String())
	}
}

func TestMemberUpdateEntityMismatchPersistsNothing(t *testing.T) {
	server := newTestServer()
	_, token, orgID := seedOrgOwner(t, server)
	bob := server.auth.Store.SeedUser("local", "bob", "s3cret", false)
	membership := server.auth.Store.SeedOrganizationMembership(bob,
		authentities.EntityRef{ID: orgID, Name: "Acme"}, authentities.OrganizationRoleMember)

	rr := doJSON(server, http.MethodPut,
		fmt.Sprintf("/api/organizations/%d/members/%d", orgID, membership.ID), token,
		fmt.Sprintf(`{"user":{"userName":"bob"},"entity":{"id":%d},"role":"OWNER"}`, orgID+100))
	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d body=%s", rr.Code, rr.Body.String())
	}

	list := doJSON(server, http.MethodGet,
		fmt.Sprintf("/api/organizations/%d/members", orgID), token, "")
	var members []struct {
		ID   int    `json:"id"`
		Role string `json:"role"`
	}
	if err := json.Unmarshal(list.Body.Bytes(), &members); err != nil {
		t.Fatalf("decode member list: %v", err)
	}
	for _, m := range members {
		if m.ID == membership.ID && m.Role != "MEMBER" {
			t.Fatalf("expected role unchanged after rejected update, got %q", m.Role)
		}
	}
}

func TestMemberRemoveFromWrongOrganizationIsNotFound(t *testing.T) {
	server := newTestServer()
	_, token, orgID := seedOrgOwner(t, server)

	otherOrg := server.tracking.Store.SeedOrganization("Globex")
	bob := server.auth.Store.SeedUser("local", "bob", "s3cret", false)
	foreign := server.auth.Store.SeedOrganizationMembership(bob,
		authentities.EntityRef{ID: otherOrg.ID, Name: otherOrg.Name}, authentities.OrganizationRoleMember)
	rr := doJSON(server, http.MethodDelete,
		fmt.Sprintf("/api/organizations/%d/members/%d", orgID, foreign.ID), token, "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestProductMemberAddRequiresProductOwner(t *testing.T) {
	server := newTestServer()
	org := server.tracking.Store.SeedOrganization("Acme")
	product := server.tracking.Store.SeedProduct(org.ID, "Storefront", true)
	user := server.auth.Store.SeedUser("local", "alice", "s3cret", false)
	server.auth.Store.SeedOrganizationMembership(user,
		authentities.EntityRef{ID: org.ID, Name: org.Name}, authentities.OrganizationRoleMember)
	server.auth.Store.SeedProductMembership(user,
		authentities.EntityRef{ID: product.ID, Name: product.Name}, authentities.ProductRoleStakeholder)
	token := signTokenFor(t, server, user)

	rr := doJSON(server, http.MethodPost,
		fmt.Sprintf("/api/organizations/%d/products/%d/members", org.ID, product.ID), token,
		`{"user":{"userName":"bob"},"role":"CONTRIBUTOR"}`)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestProductMemberAddByProductOwner(t *testing.T) {
	server := newTestServer()
	org := server.tracking.Store.SeedOrganization("Acme")
	product := server.tracking.Store.SeedProduct(org.ID, "Storefront", true)
	user := server.auth.Store.SeedUser("local", "alice", "s3cret", false)
	server.auth.Store.SeedOrganizationMembership(user,
		authentities.EntityRef{ID: org.ID, Name: org.Name}, authentities.OrganizationRoleMember)
	server.auth.Store.SeedProductMembership(user,
		authentities.EntityRef{ID: product.ID, Name: product.Name}, authentities.ProductRoleOwner)
	server.auth.Store.SeedUser("local", "bob", "s3cret", false)
	token := signTokenFor(t, server, user)

	rr := doJSON(server, http.MethodPost,
		fmt.Sprintf("/api/organizations/%d/products/%d/members", org.ID, product.ID), token,
		`{"user":{"userName":"bob"},"role":"CONTRIBUTOR"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}
}
