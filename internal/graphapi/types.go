package graphapi

import (
	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/language/ast"

	"simplifytour/internal/models/db_models"
	"simplifytour/internal/models/request_models"
	"simplifytour/pkg/utils"
)

// Upload is filled in from the multipart request map; it has no literal form.
var Upload = graphql.NewScalar(graphql.ScalarConfig{
	Name:        "Upload",
	Description: "A file part of a multipart GraphQL request.",
	Serialize:   func(value interface{}) interface{} { return nil },
	ParseValue: func(value interface{}) interface{} {
		if upload, ok := value.(*request_models.Upload); ok {
			return upload
		}
		return nil
	},
	ParseLiteral: func(valueAST ast.Value) interface{} { return nil },
})

// GenericScalar passes JSON-like values through untouched.
var GenericScalar = graphql.NewScalar(graphql.ScalarConfig{
	Name:         "GenericScalar",
	Serialize:    func(value interface{}) interface{} { return value },
	ParseValue:   func(value interface{}) interface{} { return value },
	ParseLiteral: func(valueAST ast.Value) interface{} { return valueAST.GetValue() },
})

func unixString(t *int64) interface{} {
	if t == nil {
		return nil
	}
	return utils.FormatRFC3339NPT(utils.FromUnixSecondsNPT(*t))
}

func stringField(get func(interface{}) interface{}) *graphql.Field {
	return &graphql.Field{Type: graphql.String, Resolve: func(p graphql.ResolveParams) (interface{}, error) {
		return get(p.Source), nil
	}}
}

func intField(get func(interface{}) interface{}) *graphql.Field {
	return &graphql.Field{Type: graphql.Int, Resolve: func(p graphql.ResolveParams) (interface{}, error) {
		return get(p.Source), nil
	}}
}

func boolField(get func(*db_models.User) bool) *graphql.Field {
	return &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean), Resolve: func(p graphql.ResolveParams) (interface{}, error) {
		return get(p.Source.(*db_models.User)), nil
	}}
}

func optString(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

func optInt(i *int) interface{} {
	if i == nil {
		return nil
	}
	return *i
}

func profile(src interface{}) *db_models.Profile { return src.(*db_models.Profile) }
func user(src interface{}) *db_models.User       { return src.(*db_models.User) }

var profileType = graphql.NewObject(graphql.ObjectConfig{
	Name: "ProfileQuery",
	Fields: graphql.Fields{
		"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.ID), Resolve: func(p graphql.ResolveParams) (interface{}, error) { return profile(p.Source).ID.String(), nil }},
		"username":    stringField(func(s interface{}) interface{} { return optString(profile(s).Username) }),
		"avatar":      stringField(func(s interface{}) interface{} { return optString(profile(s).Avatar) }),
		"age":         intField(func(s interface{}) interface{} { return optInt(profile(s).Age) }),
		"phoneNumber": stringField(func(s interface{}) interface{} { return optString(profile(s).PhoneNumber) }),
		"country":     stringField(func(s interface{}) interface{} { return optString(profile(s).Country) }),
		"city":        stringField(func(s interface{}) interface{} { return optString(profile(s).City) }),
		"address":     stringField(func(s interface{}) interface{} { return optString(profile(s).Address) }),
		"zipCode":     intField(func(s interface{}) interface{} { return optInt(profile(s).ZipCode) }),
		"slogan":      stringField(func(s interface{}) interface{} { return optString(profile(s).Slogan) }),
		"bio":         stringField(func(s interface{}) interface{} { return optString(profile(s).Bio) }),
	},
})

var userType = graphql.NewObject(graphql.ObjectConfig{
	Name: "UserQuery",
	Fields: graphql.Fields{
		"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.ID), Resolve: func(p graphql.ResolveParams) (interface{}, error) { return user(p.Source).ID.String(), nil }},
		"email":       stringField(func(s interface{}) interface{} { return user(s).Email }),
		"firstName":   stringField(func(s interface{}) interface{} { return user(s).FirstName }),
		"lastName":    stringField(func(s interface{}) interface{} { return user(s).LastName }),
		"isActive":    boolField(func(u *db_models.User) bool { return u.IsActive }),
		"isConfirmed": boolField(func(u *db_models.User) bool { return u.IsConfirmed }),
		"isStaff":     boolField(func(u *db_models.User) bool { return u.IsStaff }),
		"dateJoined":  stringField(func(s interface{}) interface{} { return unixString(&user(s).DateJoined) }),
		"lastLogin":   stringField(func(s interface{}) interface{} { return unixString(user(s).LastLogin) }),
		"profile": &graphql.Field{Type: profileType, Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			if u := user(p.Source); u.Profile != nil {
				return u.Profile, nil
			}
			return nil, nil
		}},
	},
})

var pageInfoType = graphql.NewObject(graphql.ObjectConfig{
	Name: "PageInfo",
	Fields: graphql.Fields{
		"hasNextPage":     &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
		"hasPreviousPage": &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
	},
})

var userEdgeType = graphql.NewObject(graphql.ObjectConfig{
	Name: "UserQueryEdge",
	Fields: graphql.Fields{
		"node":   &graphql.Field{Type: userType},
		"cursor": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
	},
})

var userConnectionType = graphql.NewObject(graphql.ObjectConfig{
	Name: "UserQueryConnection",
	Fields: graphql.Fields{
		"edges":      &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(userEdgeType))},
		"pageInfo":   &graphql.Field{Type: graphql.NewNonNull(pageInfoType)},
		"totalCount": &graphql.Field{Type: graphql.Int},
	},
})

var profileInputType = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "ProfileInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"username":    &graphql.InputObjectFieldConfig{Type: graphql.String, Description: "display name"},
		"avatar":      &graphql.InputObjectFieldConfig{Type: Upload, Description: "avatar"},
		"age":         &graphql.InputObjectFieldConfig{Type: graphql.Int},
		"phoneNumber": &graphql.InputObjectFieldConfig{Type: graphql.String},
		"country":     &graphql.InputObjectFieldConfig{Type: graphql.String},
		"city":        &graphql.InputObjectFieldConfig{Type: graphql.String},
		"address":     &graphql.InputObjectFieldConfig{Type: graphql.String},
		"zipCode":     &graphql.InputObjectFieldConfig{Type: graphql.Int},
		"slogan":      &graphql.InputObjectFieldConfig{Type: graphql.String},
		"bio":         &graphql.InputObjectFieldConfig{Type: graphql.String},
	},
})

func resultType(name string, extra graphql.Fields) *graphql.Object {
	fields := graphql.Fields{
		"success": &graphql.Field{Type: graphql.Boolean},
		"errors":  &graphql.Field{Type: graphql.NewList(graphql.String)},
	}
	for k, v := range extra {
		fields[k] = v
	}
	return graphql.NewObject(graphql.ObjectConfig{Name: name, Fields: fields})
}

func tokenType(name string) *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: name,
		Fields: graphql.Fields{
			"token":            &graphql.Field{Type: graphql.String},
			"payload":          &graphql.Field{Type: GenericScalar},
			"refreshExpiresIn": &graphql.Field{Type: graphql.Int},
		},
	})
}
