package handler

//go:generate mockgen -source=handler.go -destination=mocks/handler_mock.go -package=mocks Service,DedupService

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	dedupmodels "pessoas/internal/dedup/models"
	"pessoas/internal/person/handler/mocks"
	"pessoas/internal/person/models"
	id "pessoas/pkg/domain"
	dErrors "pessoas/pkg/domain-errors"
	"pessoas/pkg/platform/middleware/auth"
	"pessoas/pkg/platform/sentinel"
	"pessoas/pkg/secrets"
)

const (
	testSigningKey = "test-signing-key"
	testAdminKey   = "test-admin-key"
)

type HandlerSuite struct {
	suite.Suite
	router    http.Handler
	ctrl      *gomock.Controller
	service   *mocks.MockService
	dedup     *mocks.MockDedupService
	authToken string
}

func (s *HandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.service = mocks.NewMockService(s.ctrl)
	s.dedup = mocks.NewMockDedupService(s.ctrl)
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	adminHash, err := secrets.Hash(testAdminKey)
	require.NoError(s.T(), err)

	h := New(s.service, s.dedup, logger, auth.NewHMACValidator(testSigningKey), adminHash)
	r := chi.NewRouter()
	h.Register(r)
	s.router = r

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "tester@example.com",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	s.authToken, err = token.SignedString([]byte(testSigningKey))
	require.NoError(s.T(), err)
}

func (s *HandlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) request(method, path string, body any) *httptest.ResponseRecorder {
	return s.do(method, path, body, true, false)
}

func (s *HandlerSuite) adminRequest(method, path string, body any) *httptest.ResponseRecorder {
	return s.do(method, path, body, true, true)
}

func (s *HandlerSuite) do(method, path string, body any, withAuth, withAdmin bool) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.T(), json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if withAuth {
		req.Header.Set("Authorization", "Bearer "+s.authToken)
	}
	if withAdmin {
		req.Header.Set("X-Admin-Key", testAdminKey)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func testPerson(t require.TestingT, first, last string) *models.Person {
	name, err := models.NewPersonName(first, "", last, "")
	require.NoError(t, err)
	return models.NewPerson(name, id.MustBirthDate("1990-01-15"), id.GenderFemale, time.Now())
}

func (s *HandlerSuite) TestCreate() {
	p := testPerson(s.T(), "Maria", "Silva")
	s.service.EXPECT().Create(gomock.Any(), gomock.Any()).Return(p, nil)

	rec := s.request(http.MethodPost, "/people/", models.CreatePersonRequest{
		FirstName: "Maria", LastName: "Silva", BirthDate: "1990-01-15",
	})

	assert.Equal(s.T(), http.StatusCreated, rec.Code)
	var resp PersonResponse
	require.NoError(s.T(), json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(s.T(), p.Key.String(), resp.Key)
	assert.Equal(s.T(), "Maria Silva", resp.FullName)
	assert.Equal(s.T(), "active", resp.Status)
	assert.Equal(s.T(), "1990-01-15", resp.BirthDate)
}

func (s *HandlerSuite) TestCreateDuplicateBlocked() {
	s.service.EXPECT().Create(gomock.Any(), gomock.Any()).
		Return(nil, dErrors.New(dErrors.CodeDuplicatePerson, "duplicate found"))

	rec := s.request(http.MethodPost, "/people/", models.CreatePersonRequest{
		FirstName: "Maria", LastName: "Silva",
	})

	assert.Equal(s.T(), http.StatusConflict, rec.Code)
	assert.Contains(s.T(), rec.Body.String(), "duplicate_person")
}

func (s *HandlerSuite) TestCreateInvalidJSON() {
	req := httptest.NewRequest(http.MethodPost, "/people/", bytes.NewReader([]byte("not json")))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.authToken)
	rec := httptest.NewRecorder()

	s.router.ServeHTTP(rec, req)

	assert.Equal(s.T(), http.StatusBadRequest, rec.Code)
}

func (s *HandlerSuite) TestCreateValidationFailureSkipsService() {
	rec := s.request(http.MethodPost, "/people/", models.CreatePersonRequest{FirstName: "Maria"})
	assert.Equal(s.T(), http.StatusBadRequest, rec.Code)
}

func (s *HandlerSuite) TestMissingBearerToken() {
	rec := s.do(http.MethodGet, "/people/", nil, false, false)
	assert.Equal(s.T(), http.StatusUnauthorized, rec.Code)
}

func (s *HandlerSuite) TestGet() {
	p := testPerson(s.T(), "Maria", "Silva")
	s.service.EXPECT().Get(gomock.Any(), p.Key).Return(p, nil)

	rec := s.request(http.MethodGet, "/people/"+p.Key.String(), nil)
	assert.Equal(s.T(), http.StatusOK, rec.Code)
}

func (s *HandlerSuite) TestGetNotFound() {
	key := id.NewPersonKey()
	s.service.EXPECT().Get(gomock.Any(), key).Return(nil, sentinel.ErrNotFound)

	rec := s.request(http.MethodGet, "/people/"+key.String(), nil)
	assert.Equal(s.T(), http.StatusNotFound, rec.Code)
}

func (s *HandlerSuite) TestGetInvalidKey() {
	rec := s.request(http.MethodGet, "/people/not-a-uuid", nil)
	assert.Equal(s.T(), http.StatusBadRequest, rec.Code)
}

func (s *HandlerSuite) TestList() {
	people := []*models.Person{testPerson(s.T(), "Maria", "Silva"), testPerson(s.T(), "Ana", "Souza")}
	s.service.EXPECT().List(gomock.Any(), 10, 5).Return(people, nil)

	rec := s.request(http.MethodGet, "/people/?limit=10&offset=5", nil)

	assert.Equal(s.T(), http.StatusOK, rec.Code)
	var resp PersonListResponse
	require.NoError(s.T(), json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(s.T(), resp.People, 2)
}

func (s *HandlerSuite) TestRename() {
	p := testPerson(s.T(), "Maria", "Santos")
	s.service.EXPECT().Rename(gomock.Any(), p.Key, gomock.Any()).Return(p, nil)

	rec := s.request(http.MethodPut, "/people/"+p.Key.String()+"/name", models.RenamePersonRequest{
		FirstName: "Maria", LastName: "Santos",
	})
	assert.Equal(s.T(), http.StatusOK, rec.Code)
}

func (s *HandlerSuite) TestDeactivateWithReason() {
	p := testPerson(s.T(), "Maria", "Silva")
	s.service.EXPECT().Deactivate(gomock.Any(), p.Key, "moved away").Return(p, nil)

	rec := s.request(http.MethodPost, "/people/"+p.Key.String()+"/deactivate", StatusChangeRequest{Reason: "moved away"})
	assert.Equal(s.T(), http.StatusOK, rec.Code)
}

func (s *HandlerSuite) TestReactivateWithoutBody() {
	p := testPerson(s.T(), "Maria", "Silva")
	s.service.EXPECT().Reactivate(gomock.Any(), p.Key, "").Return(p, nil)

	rec := s.request(http.MethodPost, "/people/"+p.Key.String()+"/reactivate", nil)
	assert.Equal(s.T(), http.StatusOK, rec.Code)
}

func (s *HandlerSuite) TestInvalidStateMapsTo412() {
	p := testPerson(s.T(), "Maria", "Silva")
	s.service.EXPECT().Deactivate(gomock.Any(), p.Key, "").
		Return(nil, dErrors.New(dErrors.CodeInvalidState, "person is already inactive"))

	rec := s.request(http.MethodPost, "/people/"+p.Key.String()+"/deactivate", nil)
	assert.Equal(s.T(), http.StatusPreconditionFailed, rec.Code)
}

func (s *HandlerSuite) TestMergeRequiresAdminKey() {
	key := id.NewPersonKey()
	rec := s.request(http.MethodPost, "/people/"+key.String()+"/merge", models.MergePersonRequest{
		TargetKey: id.NewPersonKey().String(),
	})
	assert.Equal(s.T(), http.StatusUnauthorized, rec.Code)
}

func (s *HandlerSuite) TestMerge() {
	source := testPerson(s.T(), "Maria", "Silva")
	target := testPerson(s.T(), "Ana", "Souza")
	source.ApplyMergeInto(target, time.Now())
	s.service.EXPECT().Merge(gomock.Any(), source.Key, gomock.Any()).Return(source, nil)

	rec := s.adminRequest(http.MethodPost, "/people/"+source.Key.String()+"/merge", models.MergePersonRequest{
		TargetKey: target.Key.String(),
	})

	assert.Equal(s.T(), http.StatusOK, rec.Code)
	var resp PersonResponse
	require.NoError(s.T(), json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(s.T(), "merged", resp.Status)
	assert.Equal(s.T(), target.Key.String(), resp.MergedInto)
}

func (s *HandlerSuite) TestAddIdentifier() {
	p := testPerson(s.T(), "Maria", "Silva")
	s.service.EXPECT().AddIdentifier(gomock.Any(), p.Key, gomock.Any()).Return(p, nil)

	rec := s.request(http.MethodPost, "/people/"+p.Key.String()+"/identifiers", models.AddIdentifierRequest{
		Type: "cpf", Value: "52998224725",
	})
	assert.Equal(s.T(), http.StatusOK, rec.Code)
}

func (s *HandlerSuite) TestRemoveIdentifier() {
	p := testPerson(s.T(), "Maria", "Silva")
	s.service.EXPECT().RemoveIdentifier(gomock.Any(), p.Key, id.IdentifierTypeCPF, "52998224725").Return(p, nil)

	rec := s.request(http.MethodDelete, "/people/"+p.Key.String()+"/identifiers/cpf/52998224725", nil)
	assert.Equal(s.T(), http.StatusOK, rec.Code)
}

func (s *HandlerSuite) TestRemoveIdentifierUnknownType() {
	key := id.NewPersonKey()
	rec := s.request(http.MethodDelete, "/people/"+key.String()+"/identifiers/driver_license/x", nil)
	assert.Equal(s.T(), http.StatusBadRequest, rec.Code)
}

func (s *HandlerSuite) TestCheckDuplicate() {
	p := testPerson(s.T(), "Maria", "Silva")
	s.dedup.EXPECT().CheckDuplicate(gomock.Any(), gomock.Any(), id.MustBirthDate("1990-01-15")).Return(p, nil)

	rec := s.adminRequest(http.MethodPost, "/people/duplicates/check", DuplicateCheckRequest{
		FirstName: "Maria", LastName: "Silva", BirthDate: "1990-01-15",
	})
	assert.Equal(s.T(), http.StatusOK, rec.Code)
}

func (s *HandlerSuite) TestCheckDuplicateMiss() {
	s.dedup.EXPECT().CheckDuplicate(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, sentinel.ErrNotFound)

	rec := s.adminRequest(http.MethodPost, "/people/duplicates/check", DuplicateCheckRequest{
		FirstName: "Maria", LastName: "Silva",
	})
	assert.Equal(s.T(), http.StatusNotFound, rec.Code)
}

func (s *HandlerSuite) TestSearchDuplicatesDefaultThreshold() {
	p := testPerson(s.T(), "Maria", "Silva")
	result, err := dedupmodels.NewDuplicateResult(p, 0.95, dedupmodels.ReasonSimilarNameExactBirthDate)
	require.NoError(s.T(), err)
	s.dedup.EXPECT().FindPotentialDuplicates(gomock.Any(), gomock.Any(), gomock.Any(), 0.8).
		Return([]dedupmodels.DuplicateResult{result}, nil)

	rec := s.adminRequest(http.MethodPost, "/people/duplicates/search", DuplicateCheckRequest{
		FirstName: "Maria", LastName: "Silvia", BirthDate: "1990-01-15",
	})

	assert.Equal(s.T(), http.StatusOK, rec.Code)
	var resp DuplicateSearchResponse
	require.NoError(s.T(), json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(s.T(), resp.Matches, 1)
	assert.InDelta(s.T(), 0.95, resp.Matches[0].Score, 1e-9)
	assert.Equal(s.T(), "similar_name_exact_birth_date", resp.Matches[0].Reason)
}

func (s *HandlerSuite) TestSearchDuplicatesExplicitThreshold() {
	s.dedup.EXPECT().FindPotentialDuplicates(gomock.Any(), gomock.Any(), gomock.Any(), 0.6).
		Return(nil, nil)

	threshold := 0.6
	rec := s.adminRequest(http.MethodPost, "/people/duplicates/search", DuplicateSearchRequest{
		DuplicateCheckRequest: DuplicateCheckRequest{FirstName: "Maria", LastName: "Silva"},
		Threshold:             &threshold,
	})
	assert.Equal(s.T(), http.StatusOK, rec.Code)
}

func (s *HandlerSuite) TestCheckByIdentifier() {
	p := testPerson(s.T(), "Maria", "Silva")
	s.dedup.EXPECT().CheckDuplicateByIdentifier(gomock.Any(), id.IdentifierTypeCPF, "52998224725").Return(p, nil)

	rec := s.adminRequest(http.MethodGet, "/people/duplicates/by-identifier?type=cpf&value=52998224725", nil)
	assert.Equal(s.T(), http.StatusOK, rec.Code)
}
