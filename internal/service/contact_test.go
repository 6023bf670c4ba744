package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Rrens/shopchat/internal/domain"
	"github.com/Rrens/shopchat/internal/mailer"
)

var validContact = domain.ContactRequest{Nombre: "Ana", Email: "ana@example.com", Mensaje: "Quiero una web"}

func TestContactService_Send_Incomplete(t *testing.T) {
	sender := new(MockSender)
	svc := NewContactService(sender, "from@shop", "to@shop", nil)

	_, err := svc.Send(context.Background(), domain.ContactRequest{Nombre: "Ana"})
	assert.ErrorIs(t, err, ErrInvalidInput)
	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestContactService_Send_Disabled(t *testing.T) {
	sender := new(MockSender)
	sender.On("Enabled").Return(false)
	svc := NewContactService(sender, "", "", nil)

	res, err := svc.Send(context.Background(), validContact)
	require.NoError(t, err)
	assert.False(t, res.OK)
	assert.NotEmpty(t, res.Error)
	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestContactService_Send_NilSender(t *testing.T) {
	res, err := NewContactService(nil, "", "", nil).Send(context.Background(), validContact)
	require.NoError(t, err)
	assert.False(t, res.OK)
}

func TestContactService_Send_Success(t *testing.T) {
	sender := new(MockSender)
	sender.On("Enabled").Return(true)
	sender.On("Send", mock.Anything, mailer.Message{
		From:    "from@shop",
		To:      "to@shop",
		Subject: "Nueva solicitud de Contacto de: Ana",
		Body:    "Nombre: Ana\nEmail: ana@example.com\nMensaje: Quiero una web",
	}).Return(nil)

	res, err := NewContactService(sender, "from@shop", "to@shop", nil).Send(context.Background(), validContact)
	require.NoError(t, err)
	assert.True(t, res.OK)
	assert.Equal(t, "Mensaje de contacto enviado exitosamente.", res.Message)
	sender.AssertExpectations(t)
}

func TestContactService_Send_Failure(t *testing.T) {
	sender := new(MockSender)
	sender.On("Enabled").Return(true)
	sender.On("Send", mock.Anything, mock.Anything).Return(errors.New("smtp refused"))

	_, err := NewContactService(sender, "f", "t", nil).Send(context.Background(), validContact)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidInput)
}
