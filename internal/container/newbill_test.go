package container_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	logtest "github.com/sirupsen/logrus/hooks/test"
	mmock "github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"billed/internal"
	"billed/internal/container"
	"billed/internal/fixtures"
	"billed/internal/mock"
	"billed/pkg/types"
)

type newBillTestSuite struct {
	suite.Suite
	backend   *mock.Backend
	storage   mock.LocalStorage
	navigated []string
	newBill   *container.NewBill
}

func (s *newBillTestSuite) SetupTest() {
	logger, _ := logtest.NewNullLogger()
	s.backend = &mock.Backend{}
	s.storage = mock.LocalStorage{}
	s.navigated = nil

	user, err := json.Marshal(types.User{Type: types.UserTypeEmployee, Email: "a@a"})
	s.Require().NoError(err)
	s.storage.SetItem(internal.LOCAL_STORAGE_USER_KEY, string(user))

	s.newBill = container.NewNewBill(container.Deps{
		OnNavigate: func(pathname string) {
			s.navigated = append(s.navigated, pathname)
		},
		Backend:      s.backend,
		LocalStorage: s.storage,
		Logger:       logger,
	})
}

func TestNewBill(t *testing.T) {
	suite.Run(t, new(newBillTestSuite))
}

func validForm() types.NewBillForm {
	return types.NewBillForm{
		Type:       "Hôtel et logement",
		Name:       "Facture nuit hotel pour séminaire sur la foudre",
		Date:       "2021-05-21",
		Amount:     "400",
		VAT:        "80",
		Commentary: "séminaire billed",
	}
}

func jpg(name string) container.ChangeFileEvent {
	return container.ChangeFileEvent{Files: []container.File{{
		Name:        name,
		ContentType: "image/jpeg",
		Body:        strings.NewReader(name),
	}}}
}

func (s *newBillTestSuite) TestHandleChangeFileExtensions() {
	tt := []struct {
		name     string
		fileName string
		retained string
		valid    bool
	}{
		{name: "jpg", fileName: "image.jpg", retained: "image.jpg", valid: true},
		{name: "jpeg", fileName: "image.jpeg", retained: "image.jpeg", valid: true},
		{name: "upper case png", fileName: "SCAN.PNG", retained: "SCAN.PNG", valid: true},
		{name: "browser fake path", fileName: `C:\fakepath\ticket.jpg`, retained: "ticket.jpg", valid: true},
		{name: "text", fileName: "text.txt"},
		{name: "pdf", fileName: "facture.pdf"},
		{name: "no extension", fileName: "jpg"},
	}

	for _, test := range tt {
		s.Run(test.name, func() {
			err := s.newBill.HandleChangeFile(jpg(test.fileName))
			if test.valid {
				s.NoError(err)
				s.Empty(s.newBill.ValidationMessage())
			} else {
				s.ErrorIs(err, container.ErrInvalidFileExtension)
				s.Equal(container.InvalidFileMessage, s.newBill.ValidationMessage())
			}
			s.Equal(test.retained, s.newBill.FileName())
		})
	}
}

func (s *newBillTestSuite) TestInvalidFileDoesNotAdvance() {
	err := s.newBill.HandleChangeFile(jpg("text.txt"))
	s.Require().ErrorIs(err, container.ErrInvalidFileExtension)

	err = s.newBill.HandleSubmit(context.Background(), container.SubmitEvent{Form: validForm()})
	s.ErrorIs(err, container.ErrNoFileSelected)
	s.Empty(s.navigated)
	s.backend.AssertNotCalled(s.T(), "Upload", mmock.Anything, mmock.Anything, mmock.Anything, mmock.Anything)
	s.backend.AssertNotCalled(s.T(), "Post", mmock.Anything, mmock.Anything)
}

func (s *newBillTestSuite) TestInvalidFileReplacesValidSelection() {
	s.Require().NoError(s.newBill.HandleChangeFile(jpg("image.jpg")))
	s.Require().Error(s.newBill.HandleChangeFile(jpg("text.txt")))
	s.Empty(s.newBill.FileName())

	s.Require().NoError(s.newBill.HandleChangeFile(jpg("image.jpg")))
	s.Empty(s.newBill.ValidationMessage())
}

func (s *newBillTestSuite) TestHandleChangeFileNoFile() {
	err := s.newBill.HandleChangeFile(container.ChangeFileEvent{})
	s.ErrorIs(err, container.ErrNoFileSelected)
	s.Empty(s.newBill.FileName())
}

func (s *newBillTestSuite) TestHandleSubmit() {
	s.Require().NoError(s.newBill.HandleChangeFile(jpg("image.jpg")))

	fileURL := "https://test.storage.tld/justificatifs/image.jpg"
	s.backend.On("Upload", mmock.Anything, "justificatifs/image.jpg", mmock.Anything, "image/jpeg").
		Return(fileURL, nil).Once()
	s.backend.On("Post", mmock.Anything, mmock.MatchedBy(func(bill *types.Bill) bool {
		return bill.Status == types.BillStatusPending &&
			bill.Email == "a@a" &&
			bill.FileURL == fileURL &&
			bill.FileName == "image.jpg" &&
			bill.Amount == 400 &&
			bill.VAT == 80 &&
			bill.Pct == 20 &&
			bill.Date == "2021-05-21" &&
			bill.Type == "Hôtel et logement"
	})).Return(append(fixtures.Bills(), types.Bill{ID: "new"}), nil).Once()

	err := s.newBill.HandleSubmit(context.Background(), container.SubmitEvent{Form: validForm()})
	s.Require().NoError(err)

	s.Equal([]string{internal.ROUTE_BILLS}, s.navigated)
	s.backend.AssertExpectations(s.T())
}

func (s *newBillTestSuite) TestHandleSubmitGuessesContentType() {
	event := container.ChangeFileEvent{Files: []container.File{{Name: "scan.png", Body: strings.NewReader("png")}}}
	s.Require().NoError(s.newBill.HandleChangeFile(event))

	form := validForm()
	form.Pct = "10"

	s.backend.On("Upload", mmock.Anything, "justificatifs/scan.png", mmock.Anything, "image/png").
		Return("https://test.storage.tld/justificatifs/scan.png", nil).Once()
	s.backend.On("Post", mmock.Anything, mmock.MatchedBy(func(bill *types.Bill) bool {
		return bill.Pct == 10
	})).Return(fixtures.Bills(), nil).Once()

	s.Require().NoError(s.newBill.HandleSubmit(context.Background(), container.SubmitEvent{Form: form}))
	s.backend.AssertExpectations(s.T())
}

func (s *newBillTestSuite) TestHandleSubmitBackendFailures() {
	s.Run("upload fails", func() {
		s.SetupTest()
		s.Require().NoError(s.newBill.HandleChangeFile(jpg("image.jpg")))
		s.backend.On("Upload", mmock.Anything, mmock.Anything, mmock.Anything, mmock.Anything).
			Return("", errors.New("Erreur 500")).Once()

		err := s.newBill.HandleSubmit(context.Background(), container.SubmitEvent{Form: validForm()})
		s.Require().Error(err)
		s.Contains(err.Error(), "Erreur 500")
		s.Empty(s.navigated)
		s.backend.AssertNotCalled(s.T(), "Post", mmock.Anything, mmock.Anything)
	})

	s.Run("post fails", func() {
		s.SetupTest()
		s.Require().NoError(s.newBill.HandleChangeFile(jpg("image.jpg")))
		s.backend.On("Upload", mmock.Anything, mmock.Anything, mmock.Anything, mmock.Anything).
			Return("https://test.storage.tld/justificatifs/image.jpg", nil).Once()
		s.backend.On("Post", mmock.Anything, mmock.Anything).Return(nil, errors.New("Erreur 404")).Once()

		err := s.newBill.HandleSubmit(context.Background(), container.SubmitEvent{Form: validForm()})
		s.Require().Error(err)
		s.Contains(err.Error(), "Erreur 404")
		s.Empty(s.navigated)
	})
}

func (s *newBillTestSuite) TestHandleSubmitInvalidForm() {
	tt := []struct {
		name   string
		mutate func(*types.NewBillForm)
	}{
		{name: "unknown type", mutate: func(f *types.NewBillForm) { f.Type = "Casino" }},
		{name: "malformed date", mutate: func(f *types.NewBillForm) { f.Date = "21/05/2021" }},
		{name: "missing amount", mutate: func(f *types.NewBillForm) { f.Amount = "" }},
		{name: "negative amount", mutate: func(f *types.NewBillForm) { f.Amount = "-3" }},
		{name: "bad vat", mutate: func(f *types.NewBillForm) { f.VAT = "abc" }},
		{name: "bad pct", mutate: func(f *types.NewBillForm) { f.Pct = "1.5" }},
		{name: "nan amount", mutate: func(f *types.NewBillForm) { f.Amount = "NaN" }},
		{name: "infinite amount", mutate: func(f *types.NewBillForm) { f.Amount = "+Inf" }},
		{name: "infinite vat", mutate: func(f *types.NewBillForm) { f.VAT = "Inf" }},
		{name: "negative vat", mutate: func(f *types.NewBillForm) { f.VAT = "-50" }},
		{name: "negative pct", mutate: func(f *types.NewBillForm) { f.Pct = "-300" }},
		{name: "pct over 100", mutate: func(f *types.NewBillForm) { f.Pct = "101" }},
	}

	for _, test := range tt {
		s.Run(test.name, func() {
			s.Require().NoError(s.newBill.HandleChangeFile(jpg("image.jpg")))

			form := validForm()
			test.mutate(&form)

			err := s.newBill.HandleSubmit(context.Background(), container.SubmitEvent{Form: form})
			s.ErrorIs(err, container.ErrInvalidForm)
			s.backend.AssertNotCalled(s.T(), "Upload", mmock.Anything, mmock.Anything, mmock.Anything, mmock.Anything)
		})
	}
}

func (s *newBillTestSuite) TestHandleSubmitWithoutUser() {
	s.storage.RemoveItem(internal.LOCAL_STORAGE_USER_KEY)
	s.Require().NoError(s.newBill.HandleChangeFile(jpg("image.jpg")))

	err := s.newBill.HandleSubmit(context.Background(), container.SubmitEvent{Form: validForm()})
	s.ErrorIs(err, container.ErrNoUser)
	s.Empty(s.navigated)
}
