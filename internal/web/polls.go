package web

import (
	"errors"
	"net/http"
	"polling_system/internal"
	"polling_system/internal/db/models"
	"polling_system/internal/services"
	"polling_system/internal/sessions"
	"polling_system/internal/storage"
	"strconv"

	"github.com/go-chi/chi/v5"
)

const (
	noChoiceMessage     = "You didn't select a choice."
	alreadyVotedMessage = "You have already voted on this poll."
	pollClosedMessage   = "This poll is closed."
	invalidDateMessage  = "Enter a valid date/time."

	choiceInputs = 4
)

type indexView struct {
	page
	Questions []questionItem
}

type detailView struct {
	page
	Question    questionItem
	Choices     []*models.Choice
	VotedChoice string
	Error       string
}

type resultsView struct {
	page
	Question   questionItem
	TotalVotes uint64
	Choices    []services.ChoiceTally
}

type questionForm struct {
	QuestionText string
	Description  string
	EndDate      string
	Choices      []string
}

type createQuestionView struct {
	page
	Form  questionForm
	Error string
}

func questionID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "questionID"), 10, 64)
	return id, err == nil
}

func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	questions, err := s.polls.ListActive(r.Context(), s.now())
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	view := indexView{
		page:      s.page(r, "Polls"),
		Questions: make([]questionItem, 0, len(questions)),
	}
	for _, question := range questions {
		view.Questions = append(view.Questions, s.questionItem(question))
	}

	s.render(w, http.StatusOK, "index.html", view)
}

// loadQuestion fetches the question named in the URL. It writes the 404 or
// 500 response itself and returns nil in that case.
func (s *Server) loadQuestion(w http.ResponseWriter, r *http.Request) *models.Question {
	id, ok := questionID(r)
	if !ok {
		s.notFound(w, r)
		return nil
	}

	question, err := s.polls.Get(r.Context(), id)
	if errors.Is(err, services.ErrNotFound) {
		s.notFound(w, r)
		return nil
	} else if err != nil {
		s.serverError(w, r, err)
		return nil
	}

	return question
}

func (s *Server) detail(w http.ResponseWriter, r *http.Request) {
	question := s.loadQuestion(w, r)
	if question == nil {
		return
	}

	s.renderDetail(w, r, question, "")
}

func (s *Server) renderDetail(w http.ResponseWriter, r *http.Request, question *models.Question, message string) {
	view := detailView{
		page:     s.page(r, question.QuestionText),
		Question: s.questionItem(question),
		Choices:  question.Choices,
		Error:    message,
	}

	vote, err := s.voting.UserVote(r.Context(), sessions.CurrentUser(r.Context()), question.ID)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	if vote != nil {
		if choice := question.Choice(vote.ChoiceID); choice != nil {
			view.VotedChoice = choice.ChoiceText
		}
	}

	s.render(w, http.StatusOK, "detail.html", view)
}

func (s *Server) results(w http.ResponseWriter, r *http.Request) {
	question := s.loadQuestion(w, r)
	if question == nil {
		return
	}

	tally := services.CalculateTally(question)

	s.render(w, http.StatusOK, "results.html", resultsView{
		page:       s.page(r, question.QuestionText),
		Question:   s.questionItem(question),
		TotalVotes: tally.TotalVotes,
		Choices:    tally.Choices,
	})
}

func (s *Server) vote(w http.ResponseWriter, r *http.Request) {
	question := s.loadQuestion(w, r)
	if question == nil {
		return
	}

	if err := r.ParseForm(); err != nil {
		s.renderDetail(w, r, question, noChoiceMessage)
		return
	}

	choiceID, err := strconv.ParseInt(r.PostForm.Get("choice"), 10, 64)
	if err != nil {
		s.renderDetail(w, r, question, noChoiceMessage)
		return
	}

	err = s.voting.Vote(r.Context(), sessions.CurrentUser(r.Context()), question.ID, choiceID)
	switch {
	case err == nil:
		http.Redirect(w, r, "/"+strconv.FormatInt(question.ID, 10)+"/results", http.StatusFound)
	case errors.Is(err, services.ErrNotFound):
		s.notFound(w, r)
	case errors.Is(err, services.ErrInvalidChoice):
		s.renderDetail(w, r, question, noChoiceMessage)
	case errors.Is(err, services.ErrAlreadyVoted):
		s.renderDetail(w, r, question, alreadyVotedMessage)
	case errors.Is(err, services.ErrPollClosed):
		s.renderDetail(w, r, question, pollClosedMessage)
	case errors.Is(err, services.ErrUnauthenticated):
		http.Redirect(w, r, "/login?next=/"+strconv.FormatInt(question.ID, 10), http.StatusFound)
	default:
		s.serverError(w, r, err)
	}
}

func (s *Server) createQuestionForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, "create_question.html", createQuestionView{
		page: s.page(r, "New poll"),
		Form: questionForm{Choices: make([]string, choiceInputs)},
	})
}

func (s *Server) createQuestion(w http.ResponseWriter, r *http.Request) {
	if err := s.parseForm(w, r); err != nil {
		s.renderCreateQuestion(w, r, questionForm{Choices: make([]string, choiceInputs)}, err.Error())
		return
	}

	form := questionForm{
		QuestionText: r.PostForm.Get("question_text"),
		Description:  r.PostForm.Get("description"),
		EndDate:      r.PostForm.Get("end_date"),
		Choices:      r.PostForm["choice"],
	}
	for len(form.Choices) < choiceInputs {
		form.Choices = append(form.Choices, "")
	}

	endDate, err := internal.ParseDateTimeLocal(form.EndDate, s.config.Location)
	if err != nil {
		s.renderCreateQuestion(w, r, form, invalidDateMessage)
		return
	}

	image, err := s.saveUpload(r, "image", storage.PostsDir)
	if errors.Is(err, storage.ErrNotImage) {
		s.renderCreateQuestion(w, r, form, err.Error())
		return
	} else if err != nil {
		s.serverError(w, r, err)
		return
	}

	question, err := s.polls.Create(r.Context(), sessions.CurrentUser(r.Context()), services.NewQuestion{
		QuestionText: form.QuestionText,
		Description:  form.Description,
		EndDate:      endDate,
		Image:        image,
		Choices:      form.Choices,
	})
	if err != nil {
		s.removeUpload(image)

		if services.IsValidationError(err) {
			s.renderCreateQuestion(w, r, form, err.Error())
			return
		}
		s.serverError(w, r, err)
		return
	}

	http.Redirect(w, r, "/"+strconv.FormatInt(question.ID, 10), http.StatusFound)
}

func (s *Server) renderCreateQuestion(w http.ResponseWriter, r *http.Request, form questionForm, message string) {
	s.render(w, http.StatusOK, "create_question.html", createQuestionView{
		page:  s.page(r, "New poll"),
		Form:  form,
		Error: capitalize(message),
	})
}
