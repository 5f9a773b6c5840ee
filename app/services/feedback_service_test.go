package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/rasoi/app/models"
	"github.com/shashiranjanraj/rasoi/app/policy"
)

func newFeedbackFixture(t *testing.T) (*FeedbackService, policy.Caller, models.CateringService) {
	t.Helper()
	services := newFakeServiceRepo()
	catalog := NewCateringService(services, newFakeCategoryRepo(), newFakeItemRepo())
	owner := manager()

	svc, err := catalog.Create(context.Background(), owner, ServiceInput{Name: "Sunrise", Location: "Pune"})
	require.NoError(t, err)

	return NewFeedbackService(newFakeFeedbackRepo(), services), owner, svc
}

func customer() policy.Caller {
	return policy.Caller{ID: primitive.NewObjectID().Hex(), Role: models.RoleCustomer}
}

func TestCreateFeedback(t *testing.T) {
	feedback, _, svc := newFeedbackFixture(t)
	ctx := context.Background()

	fb, err := feedback.Create(ctx, customer(), FeedbackInput{
		CateringServiceID: svc.ID.Hex(),
		Rating:            5,
		Comment:           "Excellent food",
	})
	require.NoError(t, err)
	assert.Equal(t, 5, fb.Rating)

	out, err := feedback.ListForService(ctx, svc.ID.Hex())
	require.NoError(t, err)
	assert.Len(t, out, 1)
}

func TestCreateFeedbackMissingService(t *testing.T) {
	feedback, _, _ := newFeedbackFixture(t)

	_, err := feedback.Create(context.Background(), customer(), FeedbackInput{
		CateringServiceID: primitive.NewObjectID().Hex(),
		Rating:            3,
		Comment:           "ok",
	})
	svcErr := requireKind(t, err, KindNotFound)
	assert.Equal(t, "Catering Service Not Found", svcErr.Message)
}

func TestListManagedRequiresOwnership(t *testing.T) {
	feedback, owner, svc := newFeedbackFixture(t)
	ctx := context.Background()

	_, err := feedback.Create(ctx, customer(), FeedbackInput{CateringServiceID: svc.ID.Hex(), Rating: 4, Comment: "good"})
	require.NoError(t, err)

	out, err := feedback.ListManaged(ctx, owner, svc.ID.Hex())
	require.NoError(t, err)
	assert.Len(t, out, 1)

	_, err = feedback.ListManaged(ctx, manager(), svc.ID.Hex())
	svcErr := requireKind(t, err, KindForbidden)
	assert.Equal(t, "Access denied", svcErr.Message)

	_, err = feedback.ListManaged(ctx, owner, primitive.NewObjectID().Hex())
	requireKind(t, err, KindNotFound)
}

func TestDeleteFeedbackAdminOnly(t *testing.T) {
	feedback, owner, svc := newFeedbackFixture(t)
	admin := policy.Caller{ID: primitive.NewObjectID().Hex(), Role: models.RoleAdmin}
	ctx := context.Background()

	fb, err := feedback.Create(ctx, customer(), FeedbackInput{CateringServiceID: svc.ID.Hex(), Rating: 1, Comment: "bad"})
	require.NoError(t, err)

	err = feedback.Delete(ctx, owner, fb.ID.Hex())
	requireKind(t, err, KindForbidden)

	require.NoError(t, feedback.Delete(ctx, admin, fb.ID.Hex()))

	err = feedback.Delete(ctx, admin, fb.ID.Hex())
	svcErr := requireKind(t, err, KindNotFound)
	assert.Equal(t, "Feedback not found", svcErr.Message)
}

func TestContactSend(t *testing.T) {
	contacts := NewContactService(newFakeContactRepo())
	ctx := context.Background()

	_, err := contacts.Send(ctx, customer(), ContactInput{Subject: "  ", Message: "help"})
	svcErr := requireKind(t, err, KindValidation)
	assert.Equal(t, "Subject and message are required", svcErr.Message)

	msg, err := contacts.Send(ctx, customer(), ContactInput{Subject: "Order", Message: "Need a quote"})
	require.NoError(t, err)
	assert.Equal(t, "Order", msg.Subject)

	all, err := contacts.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
