package graphql

import (
	"errors"
	"polling_system/internal/db/models"
	"polling_system/internal/services"
	"polling_system/internal/sessions"
	"time"

	"github.com/graphql-go/graphql"
	"go.uber.org/zap"
)

var errInternal = errors.New("internal error")

var choiceType = graphql.NewObject(
	graphql.ObjectConfig{
		Name: "Choice",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Int),
			},
			"text": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
			},
			"votes": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Int),
			},
		},
	},
)

var pollType = graphql.NewObject(
	graphql.ObjectConfig{
		Name: "Poll",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Int),
			},
			"questionText": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
			},
			"description": &graphql.Field{
				Type: graphql.String,
			},
			"image": &graphql.Field{
				Type: graphql.String,
			},
			// RFC 3339 timestamps
			"pubDate": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
			},
			"endDate": &graphql.Field{
				Type: graphql.String,
			},
			"status": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
			},
			"active": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Boolean),
			},
			"choices": &graphql.Field{
				Type: graphql.NewList(choiceType),
			},
		},
	},
)

var choiceResultType = graphql.NewObject(
	graphql.ObjectConfig{
		Name: "ChoiceResult",
		Fields: graphql.Fields{
			"choice": &graphql.Field{
				Type: graphql.NewNonNull(choiceType),
			},
			"votes": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Int),
			},
			"percentage": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Float),
			},
		},
	},
)

var resultsType = graphql.NewObject(
	graphql.ObjectConfig{
		Name: "Results",
		Fields: graphql.Fields{
			"poll": &graphql.Field{
				Type: graphql.NewNonNull(pollType),
			},
			"totalVotes": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Int),
			},
			"choices": &graphql.Field{
				Type: graphql.NewList(choiceResultType),
			},
		},
	},
)

type resolver struct {
	polls  services.PollService
	voting services.VotingService
	now    func() time.Time
	logger *zap.SugaredLogger
}

// NewSchema builds the polls schema. Voting uses the user attached to the
// request context by the session middleware.
func NewSchema(polls services.PollService, voting services.VotingService, logger *zap.SugaredLogger) (graphql.Schema, error) {
	return newSchema(&resolver{
		polls:  polls,
		voting: voting,
		now:    time.Now,
		logger: logger,
	})
}

func newSchema(r *resolver) (graphql.Schema, error) {
	idArgs := graphql.FieldConfigArgument{
		"id": &graphql.ArgumentConfig{
			Type: graphql.NewNonNull(graphql.Int),
		},
	}

	queryType := graphql.NewObject(
		graphql.ObjectConfig{
			Name: "Query",
			Fields: graphql.Fields{
				"activePolls": &graphql.Field{
					Type:    graphql.NewList(pollType),
					Resolve: r.activePolls,
				},
				"poll": &graphql.Field{
					Type:    pollType,
					Args:    idArgs,
					Resolve: r.poll,
				},
				"results": &graphql.Field{
					Type:    resultsType,
					Args:    idArgs,
					Resolve: r.results,
				},
			},
		},
	)

	mutationType := graphql.NewObject(
		graphql.ObjectConfig{
			Name: "Mutation",
			Fields: graphql.Fields{
				"vote": &graphql.Field{
					Type: resultsType,
					Args: graphql.FieldConfigArgument{
						"questionId": &graphql.ArgumentConfig{
							Type: graphql.NewNonNull(graphql.Int),
						},
						"choiceId": &graphql.ArgumentConfig{
							Type: graphql.NewNonNull(graphql.Int),
						},
					},
					Resolve: r.vote,
				},
			},
		},
	)

	return graphql.NewSchema(
		graphql.SchemaConfig{
			Query:    queryType,
			Mutation: mutationType,
		},
	)
}

func (r *resolver) activePolls(params graphql.ResolveParams) (interface{}, error) {
	now := r.now()

	questions, err := r.polls.ListActive(params.Context, now)
	if err != nil {
		return nil, r.internalError("failed to list active polls", err)
	}

	polls := make([]map[string]interface{}, 0, len(questions))
	for _, question := range questions {
		polls = append(polls, pollValue(question, now))
	}

	return polls, nil
}

func (r *resolver) poll(params graphql.ResolveParams) (interface{}, error) {
	id, _ := params.Args["id"].(int)

	question, err := r.polls.Get(params.Context, int64(id))
	if errors.Is(err, services.ErrNotFound) {
		return nil, nil
	} else if err != nil {
		return nil, r.internalError("failed to get poll", err)
	}

	return pollValue(question, r.now()), nil
}

func (r *resolver) results(params graphql.ResolveParams) (interface{}, error) {
	id, _ := params.Args["id"].(int)

	question, err := r.polls.Get(params.Context, int64(id))
	if errors.Is(err, services.ErrNotFound) {
		return nil, nil
	} else if err != nil {
		return nil, r.internalError("failed to get poll", err)
	}

	return resultsValue(question, r.now()), nil
}

func (r *resolver) vote(params graphql.ResolveParams) (interface{}, error) {
	questionID, _ := params.Args["questionId"].(int)
	choiceID, _ := params.Args["choiceId"].(int)

	err := r.voting.Vote(params.Context, sessions.CurrentUser(params.Context), int64(questionID), int64(choiceID))
	switch {
	case err == nil:
	case errors.Is(err, services.ErrUnauthenticated),
		errors.Is(err, services.ErrNotFound),
		errors.Is(err, services.ErrInvalidChoice),
		errors.Is(err, services.ErrAlreadyVoted),
		errors.Is(err, services.ErrPollClosed):
		return nil, err
	default:
		return nil, r.internalError("failed to vote", err)
	}

	question, err := r.polls.Get(params.Context, int64(questionID))
	if err != nil {
		return nil, r.internalError("failed to get poll", err)
	}

	return resultsValue(question, r.now()), nil
}

func (r *resolver) internalError(message string, err error) error {
	r.logger.Errorw(message, "error", err)
	return errInternal
}

func choiceValue(choice *models.Choice) map[string]interface{} {
	return map[string]interface{}{
		"id":    int(choice.ID),
		"text":  choice.ChoiceText,
		"votes": int(choice.Votes),
	}
}

func pollValue(question *models.Question, now time.Time) map[string]interface{} {
	choices := make([]map[string]interface{}, 0, len(question.Choices))
	for _, choice := range question.Choices {
		choices = append(choices, choiceValue(choice))
	}

	value := map[string]interface{}{
		"id":           int(question.ID),
		"questionText": question.QuestionText,
		"description":  question.Description,
		"image":        question.Image,
		"pubDate":      question.PubDate.Format(time.RFC3339),
		"endDate":      nil,
		"status":       question.Status(now).String(),
		"active":       question.IsActive(now),
		"choices":      choices,
	}
	if question.EndDate != nil {
		value["endDate"] = question.EndDate.Format(time.RFC3339)
	}

	return value
}

func resultsValue(question *models.Question, now time.Time) map[string]interface{} {
	tally := services.CalculateTally(question)

	choices := make([]map[string]interface{}, 0, len(tally.Choices))
	for _, choiceTally := range tally.Choices {
		choices = append(choices, map[string]interface{}{
			"choice":     choiceValue(choiceTally.Choice),
			"votes":      int(choiceTally.Votes),
			"percentage": choiceTally.Percentage,
		})
	}

	return map[string]interface{}{
		"poll":       pollValue(question, now),
		"totalVotes": int(tally.TotalVotes),
		"choices":    choices,
	}
}
