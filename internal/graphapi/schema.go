package graphapi

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/graphql-go/graphql"

	"simplifytour/internal/models/db_models"
	"simplifytour/internal/models/request_models"
	resp "simplifytour/internal/models/response_models"
	"simplifytour/internal/services"
	"simplifytour/pkg/logger"
	"simplifytour/pkg/utils"
)

const defaultUsersPage = 100

type ctxKey int

const (
	userCtxKey ctxKey = iota
	ginCtxKey
)

func withRequest(ctx context.Context, c *gin.Context, user *db_models.User) context.Context {
	ctx = context.WithValue(ctx, ginCtxKey, c)
	return context.WithValue(ctx, userCtxKey, user)
}

func currentUser(ctx context.Context) *db_models.User {
	u, _ := ctx.Value(userCtxKey).(*db_models.User)
	return u
}

func ginContext(ctx context.Context) *gin.Context {
	c, _ := ctx.Value(ginCtxKey).(*gin.Context)
	return c
}

// CookieConfig controls the cookie set by tokenAuth.
type CookieConfig struct {
	Name   string
	MaxAge int
	Secure bool
}

type resolver struct {
	users  services.UserService
	cookie CookieConfig
	log    logger.Logger
}

// errorList flattens a failure to the [field, message] list mutations return.
// Anything that is not a field error is reported as a GraphQL error instead.
func (r *resolver) errorList(err error) ([]string, error) {
	var fe *services.FieldError
	if errors.As(err, &fe) {
		return []string{fe.Field, fe.Message}, nil
	}
	if errors.Is(err, utils.ErrDatabaseError) {
		r.log.Error("graphql mutation: ", err)
		return nil, errors.New("internal server error")
	}
	return nil, err
}

func (r *resolver) failure(err error, extra map[string]interface{}) (interface{}, error) {
	list, gqlErr := r.errorList(err)
	if gqlErr != nil {
		return nil, gqlErr
	}
	result := map[string]interface{}{"success": false, "errors": list}
	for k, v := range extra {
		result[k] = v
	}
	return result, nil
}

func loginRequired(ctx context.Context) (*db_models.User, error) {
	u := currentUser(ctx)
	if u == nil {
		return nil, utils.ErrPermissionDenied
	}
	return u, nil
}

func tokenPayload(result *resp.TokenResult) map[string]interface{} {
	return map[string]interface{}{
		"token":            result.Token,
		"payload":          result.Payload,
		"refreshExpiresIn": result.RefreshExpiresIn,
	}
}

func argString(args map[string]interface{}, name string) string {
	s, _ := args[name].(string)
	return s
}

func (r *resolver) resolveUsers(p graphql.ResolveParams) (interface{}, error) {
	u, err := loginRequired(p.Context)
	if err != nil {
		return nil, err
	}
	if !u.IsStaff {
		return nil, utils.ErrPermissionDenied
	}
	first, ok := p.Args["first"].(int)
	if !ok || first <= 0 {
		first = defaultUsersPage
	}
	skip, _ := p.Args["skip"].(int)
	if skip < 0 {
		skip = 0
	}

	users, total, err := r.users.ListUsers(p.Context, argString(p.Args, "email"), first, skip)
	if err != nil {
		return nil, err
	}
	edges := make([]map[string]interface{}, 0, len(users))
	for i := range users {
		edges = append(edges, map[string]interface{}{
			"node":   &users[i],
			"cursor": strconv.Itoa(skip + i),
		})
	}
	return map[string]interface{}{
		"edges":      edges,
		"totalCount": int(total),
		"pageInfo": map[string]interface{}{
			"hasNextPage":     int64(skip+len(users)) < total,
			"hasPreviousPage": skip > 0,
		},
	}, nil
}

func (r *resolver) resolveUser(p graphql.ResolveParams) (interface{}, error) {
	u, err := loginRequired(p.Context)
	if err != nil {
		return nil, err
	}
	return r.users.GetUser(p.Context, u.ID)
}

func (r *resolver) resolveProfile(p graphql.ResolveParams) (interface{}, error) {
	u, err := loginRequired(p.Context)
	if err != nil {
		return nil, err
	}
	return r.users.GetProfile(p.Context, u.ID)
}

func (r *resolver) tokenAuth(p graphql.ResolveParams) (interface{}, error) {
	result, err := r.users.TokenAuth(p.Context, argString(p.Args, "email"), argString(p.Args, "password"))
	if err != nil {
		return nil, err
	}
	if c := ginContext(p.Context); c != nil && r.cookie.Name != "" {
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(r.cookie.Name, result.Token, r.cookie.MaxAge, "/", "", r.cookie.Secure, true)
	}
	return tokenPayload(result), nil
}

func (r *resolver) verifyToken(p graphql.ResolveParams) (interface{}, error) {
	payload, err := r.users.VerifyToken(p.Context, argString(p.Args, "token"))
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"payload": payload}, nil
}

func (r *resolver) refreshToken(p graphql.ResolveParams) (interface{}, error) {
	result, err := r.users.RefreshToken(p.Context, argString(p.Args, "token"))
	if err != nil {
		return nil, err
	}
	return tokenPayload(result), nil
}

func (r *resolver) register(p graphql.ResolveParams) (interface{}, error) {
	u, token, err := r.users.Register(p.Context,
		argString(p.Args, "email"), argString(p.Args, "password"), argString(p.Args, "passwordRepeat"))
	if err != nil {
		return r.failure(err, map[string]interface{}{"token": nil})
	}
	return map[string]interface{}{"success": true, "user": u, "token": token}, nil
}

func (r *resolver) activateUser(p graphql.ResolveParams) (interface{}, error) {
	if err := r.users.ActivateUser(p.Context, argString(p.Args, "token"), argString(p.Args, "uid")); err != nil {
		return r.failure(err, nil)
	}
	return map[string]interface{}{"success": true}, nil
}

func (r *resolver) resetPassword(p graphql.ResolveParams) (interface{}, error) {
	if err := r.users.ResetPassword(p.Context, argString(p.Args, "email")); err != nil {
		return r.failure(err, nil)
	}
	return map[string]interface{}{"success": true}, nil
}

func (r *resolver) resetPasswordConfirmation(p graphql.ResolveParams) (interface{}, error) {
	err := r.users.ResetPasswordConfirm(p.Context,
		argString(p.Args, "uid"), argString(p.Args, "token"), argString(p.Args, "email"),
		argString(p.Args, "newPassword"), argString(p.Args, "reNewPassword"))
	if err != nil {
		return r.failure(err, nil)
	}
	return map[string]interface{}{"success": true}, nil
}

func optionalString(input map[string]interface{}, key string) *string {
	if s, ok := input[key].(string); ok {
		return &s
	}
	return nil
}

func optionalInt(input map[string]interface{}, key string) *int {
	if i, ok := input[key].(int); ok {
		return &i
	}
	return nil
}

func profileInput(input map[string]interface{}) request_models.ProfileInput {
	in := request_models.ProfileInput{
		Username:    optionalString(input, "username"),
		Age:         optionalInt(input, "age"),
		PhoneNumber: optionalString(input, "phoneNumber"),
		Country:     optionalString(input, "country"),
		City:        optionalString(input, "city"),
		Address:     optionalString(input, "address"),
		ZipCode:     optionalInt(input, "zipCode"),
		Slogan:      optionalString(input, "slogan"),
		Bio:         optionalString(input, "bio"),
	}
	if upload, ok := input["avatar"].(*request_models.Upload); ok {
		in.Avatar = upload
	}
	return in
}

func (r *resolver) updateProfile(p graphql.ResolveParams) (interface{}, error) {
	u, err := loginRequired(p.Context)
	if err != nil {
		return nil, err
	}
	input, _ := p.Args["input"].(map[string]interface{})
	updated, err := r.users.UpdateProfile(p.Context, u.ID, profileInput(input))
	if err != nil {
		return r.failure(err, map[string]interface{}{"profile": nil})
	}
	return map[string]interface{}{"success": true, "profile": updated}, nil
}

func nonNullString() *graphql.ArgumentConfig {
	return &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)}
}

// NewSchema builds the users schema served at /graphql.
func NewSchema(users services.UserService, cookie CookieConfig, log logger.Logger) (graphql.Schema, error) {
	r := &resolver{users: users, cookie: cookie, log: log}

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"users": &graphql.Field{
				Type: userConnectionType,
				Args: graphql.FieldConfigArgument{
					"email": &graphql.ArgumentConfig{Type: graphql.String},
					"first": &graphql.ArgumentConfig{Type: graphql.Int},
					"skip":  &graphql.ArgumentConfig{Type: graphql.Int},
				},
				Resolve: r.resolveUsers,
			},
			"user":    &graphql.Field{Type: userType, Resolve: r.resolveUser},
			"profile": &graphql.Field{Type: profileType, Resolve: r.resolveProfile},
		},
	})

	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"tokenAuth": &graphql.Field{
				Type:    tokenType("ObtainJSONWebToken"),
				Args:    graphql.FieldConfigArgument{"email": nonNullString(), "password": nonNullString()},
				Resolve: r.tokenAuth,
			},
			"verifyToken": &graphql.Field{
				Type: graphql.NewObject(graphql.ObjectConfig{
					Name:   "Verify",
					Fields: graphql.Fields{"payload": &graphql.Field{Type: GenericScalar}},
				}),
				Args:    graphql.FieldConfigArgument{"token": nonNullString()},
				Resolve: r.verifyToken,
			},
			"refreshToken": &graphql.Field{
				Type:    tokenType("Refresh"),
				Args:    graphql.FieldConfigArgument{"token": nonNullString()},
				Resolve: r.refreshToken,
			},
			"register": &graphql.Field{
				Type: resultType("Register", graphql.Fields{
					"user":  &graphql.Field{Type: userType},
					"token": &graphql.Field{Type: graphql.String},
				}),
				Args: graphql.FieldConfigArgument{
					"email":          nonNullString(),
					"password":       nonNullString(),
					"passwordRepeat": nonNullString(),
				},
				Resolve: r.register,
			},
			"activateUser": &graphql.Field{
				Type:    resultType("Activate", nil),
				Args:    graphql.FieldConfigArgument{"token": nonNullString(), "uid": nonNullString()},
				Resolve: r.activateUser,
			},
			"resetPassword": &graphql.Field{
				Type:    resultType("ResetPassword", nil),
				Args:    graphql.FieldConfigArgument{"email": nonNullString()},
				Resolve: r.resetPassword,
			},
			"resetPasswordConfirmation": &graphql.Field{
				Type: resultType("ResetPasswordConfirm", nil),
				Args: graphql.FieldConfigArgument{
					"uid":           nonNullString(),
					"token":         nonNullString(),
					"email":         nonNullString(),
					"newPassword":   nonNullString(),
					"reNewPassword": nonNullString(),
				},
				Resolve: r.resetPasswordConfirmation,
			},
			"updateProfile": &graphql.Field{
				Type: resultType("UpdateProfile", graphql.Fields{
					"profile": &graphql.Field{Type: profileType},
				}),
				Args:    graphql.FieldConfigArgument{"input": &graphql.ArgumentConfig{Type: profileInputType}},
				Resolve: r.updateProfile,
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{Query: query, Mutation: mutation})
}
