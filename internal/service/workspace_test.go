package service_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/usekaneo/kaneo-sub002/common/id"
	"github.com/usekaneo/kaneo-sub002/internal/model"
	"github.com/usekaneo/kaneo-sub002/internal/service"
	"github.com/usekaneo/kaneo-sub002/internal/store"
)

var _ = Describe("WorkspaceService", func() {
	const (
		workspaceID = int64(10)
		ownerID     = int64(1)
		adminID     = int64(2)
		memberID    = int64(3)
		outsiderID  = int64(4)
	)

	var (
		ctx      context.Context
		stores   *mockStoreProvider
		txRunner *mockTxRunner
		svc      service.WorkspaceService
	)

	BeforeEach(func() {
		ctx = context.Background()
		stores = newMockStoreProvider()
		txRunner = &mockTxRunner{stores: stores}
		svc = service.NewWorkspaceService(stores, txRunner)

		stores.workspaces.getByIDFn = func(_ context.Context, id int64) (*model.Workspace, error) {
			if id != workspaceID {
				return nil, store.ErrNotFound
			}
			return &model.Workspace{ID: workspaceID, Name: "Acme", Slug: "acme", OwnerID: ownerID}, nil
		}
		withMembers(stores, workspaceID, map[int64]model.MemberRole{
			ownerID:  model.MemberRoleOwner,
			adminID:  model.MemberRoleAdmin,
			memberID: model.MemberRoleMember,
		})

		err := id.Init(1)
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("Create", func() {
		It("creates the workspace and its owner membership in one transaction", func() {
			var created *model.Workspace
			var added *model.Member
			stores.workspaces.createFn = func(_ context.Context, ws *model.Workspace) error {
				created = ws
				return nil
			}
			stores.members.addFn = func(_ context.Context, m *model.Member) error {
				added = m
				return nil
			}

			ws, err := svc.Create(ctx, service.CreateWorkspaceParams{Name: "  Acme Corp ", OwnerID: ownerID})
			Expect(err).NotTo(HaveOccurred())
			Expect(txRunner.calls).To(Equal(1))
			Expect(ws.Name).To(Equal("Acme Corp"))
			Expect(ws.Slug).To(Equal("acme-corp"))
			Expect(created).To(Equal(ws))
			Expect(added.WorkspaceID).To(Equal(ws.ID))
			Expect(added.UserID).To(Equal(ownerID))
			Expect(added.Role).To(Equal(model.MemberRoleOwner))
		})

		It("suffixes taken slugs", func() {
			stores.workspaces.getBySlugFn = func(_ context.Context, slug string) (*model.Workspace, error) {
				if slug == "acme" || slug == "acme-1" {
					return &model.Workspace{Slug: slug}, nil
				}
				return nil, store.ErrNotFound
			}

			ws, err := svc.Create(ctx, service.CreateWorkspaceParams{Name: "Acme", OwnerID: ownerID})
			Expect(err).NotTo(HaveOccurred())
			Expect(ws.Slug).To(Equal("acme-2"))
		})

		It("gives up after twenty suffixes", func() {
			stores.workspaces.getBySlugFn = func(_ context.Context, slug string) (*model.Workspace, error) {
				return &model.Workspace{Slug: slug}, nil
			}

			_, err := svc.Create(ctx, service.CreateWorkspaceParams{Name: "Acme", OwnerID: ownerID})
			Expect(errors.Is(err, service.ErrConflict)).To(BeTrue())
		})

		It("requires a name", func() {
			_, err := svc.Create(ctx, service.CreateWorkspaceParams{Name: "   ", OwnerID: ownerID})
			Expect(errors.Is(err, service.ErrInvalidInput)).To(BeTrue())
			Expect(txRunner.calls).To(BeZero())
		})
	})

	Describe("Get", func() {
		It("hides workspaces from non-members", func() {
			_, err := svc.Get(ctx, workspaceID, outsiderID)
			Expect(err).To(MatchError(service.ErrForbidden))
		})

		It("reports unknown workspaces as not found", func() {
			_, err := svc.Get(ctx, 999, ownerID)
			Expect(err).To(MatchError(service.ErrNotFound))
		})
	})

	Describe("Update", func() {
		It("lets admins rename", func() {
			ws, err := svc.Update(ctx, workspaceID, adminID, service.UpdateWorkspaceParams{Name: strPtr("Acme 2")})
			Expect(err).NotTo(HaveOccurred())
			Expect(ws.Name).To(Equal("Acme 2"))
			Expect(ws.Slug).To(Equal("acme"))
		})

		It("forbids plain members", func() {
			_, err := svc.Update(ctx, workspaceID, memberID, service.UpdateWorkspaceParams{Name: strPtr("x")})
			Expect(err).To(MatchError(service.ErrForbidden))
		})
	})

	Describe("Delete", func() {
		It("is reserved to the owner", func() {
			Expect(svc.Delete(ctx, workspaceID, adminID)).To(MatchError(service.ErrForbidden))

			deleted := false
			stores.workspaces.deleteFn = func(_ context.Context, id int64) error {
				deleted = id == workspaceID
				return nil
			}
			Expect(svc.Delete(ctx, workspaceID, ownerID)).To(Succeed())
			Expect(deleted).To(BeTrue())
		})
	})

	Describe("UpdateMemberRole", func() {
		It("promotes a member", func() {
			stores.members.updateRoleFn = func(_ context.Context, wsID, userID int64, role model.MemberRole) (*model.Member, error) {
				return &model.Member{WorkspaceID: wsID, UserID: userID, Role: role}, nil
			}

			m, err := svc.UpdateMemberRole(ctx, workspaceID, adminID, memberID, model.MemberRoleAdmin)
			Expect(err).NotTo(HaveOccurred())
			Expect(m.Role).To(Equal(model.MemberRoleAdmin))
		})

		It("never demotes the owner", func() {
			_, err := svc.UpdateMemberRole(ctx, workspaceID, adminID, ownerID, model.MemberRoleMember)
			Expect(errors.Is(err, service.ErrForbidden)).To(BeTrue())
		})

		It("does not hand out ownership", func() {
			_, err := svc.UpdateMemberRole(ctx, workspaceID, ownerID, memberID, model.MemberRoleOwner)
			Expect(errors.Is(err, service.ErrInvalidInput)).To(BeTrue())
		})
	})

	Describe("RemoveMember", func() {
		var removed []int64

		BeforeEach(func() {
			removed = nil
			stores.members.removeFn = func(_ context.Context, _, userID int64) error {
				removed = append(removed, userID)
				return nil
			}
		})

		It("lets members leave on their own", func() {
			Expect(svc.RemoveMember(ctx, workspaceID, memberID, memberID)).To(Succeed())
			Expect(removed).To(ConsistOf(memberID))
		})

		It("forbids members from removing others", func() {
			err := svc.RemoveMember(ctx, workspaceID, memberID, adminID)
			Expect(err).To(MatchError(service.ErrForbidden))
			Expect(removed).To(BeEmpty())
		})

		It("never removes the owner", func() {
			err := svc.RemoveMember(ctx, workspaceID, adminID, ownerID)
			Expect(errors.Is(err, service.ErrForbidden)).To(BeTrue())
			Expect(removed).To(BeEmpty())
		})
	})
})
