package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kidshop/kidshop-golang/internal/models"
)

func TestRegister(t *testing.T) {
	t.Run("creates a customer", func(t *testing.T) {
		h, mock, db := newMockHandlers(t)
		defer db.Close()

		mock.ExpectQuery("INSERT INTO customers").
			WithArgs("anna@example.com", sqlmock.AnyArg(), "Anna", "Nowak").
			WillReturnRows(sqlmock.NewRows([]string{"id", "email", "created_at"}).
				AddRow(1, "anna@example.com", time.Now()))

		c, w := newTestContext(t, http.MethodPost, "/v1/auth/register",
			`{"email":"anna@example.com","password":"correct-horse","first_name":"Anna","last_name":"Nowak"}`, 0)
		h.Register(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "anna@example.com")

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate email is a conflict, not a generic failure", func(t *testing.T) {
		h, mock, db := newMockHandlers(t)
		defer db.Close()

		mock.ExpectQuery("INSERT INTO customers").
			WillReturnError(&pq.Error{Code: "23505"})

		c, w := newTestContext(t, http.MethodPost, "/v1/auth/register",
			`{"email":"anna@example.com","password":"correct-horse"}`, 0)
		h.Register(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "already exists")

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing password is rejected before any query", func(t *testing.T) {
		h, mock, db := newMockHandlers(t)
		defer db.Close()

		c, w := newTestContext(t, http.MethodPost, "/v1/auth/register",
			`{"email":"anna@example.com"}`, 0)
		h.Register(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestLogin(t *testing.T) {
	t.Run("valid credentials yield a token", func(t *testing.T) {
		h, mock, db := newMockHandlers(t)
		defer db.Close()

		var password models.Password
		require.NoError(t, password.Set("correct-horse"))

		mock.ExpectQuery("SELECT id, email, password_hash FROM customers").
			WithArgs("anna@example.com").
			WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash"}).
				AddRow(1, "anna@example.com", password.Hash))

		c, w := newTestContext(t, http.MethodPost, "/v1/auth/login",
			`{"email":"anna@example.com","password":"correct-horse"}`, 0)
		h.Login(c)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "token")

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("wrong password is unauthorized", func(t *testing.T) {
		h, mock, db := newMockHandlers(t)
		defer db.Close()

		var password models.Password
		require.NoError(t, password.Set("correct-horse"))

		mock.ExpectQuery("SELECT id, email, password_hash FROM customers").
			WithArgs("anna@example.com").
			WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash"}).
				AddRow(1, "anna@example.com", password.Hash))

		c, w := newTestContext(t, http.MethodPost, "/v1/auth/login",
			`{"email":"anna@example.com","password":"wrong"}`, 0)
		h.Login(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid credentials")
	})

	t.Run("unknown email is unauthorized, not not-found", func(t *testing.T) {
		h, mock, db := newMockHandlers(t)
		defer db.Close()

		mock.ExpectQuery("SELECT id, email, password_hash FROM customers").
			WithArgs("ghost@example.com").
			WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash"}))

		c, w := newTestContext(t, http.MethodPost, "/v1/auth/login",
			`{"email":"ghost@example.com","password":"whatever"}`, 0)
		h.Login(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
