package mailchimp

import (
	"strings"

	"audience-sync/core/schema"
)

const (
	KindList   = "list"
	KindMember = "member"
)

var memberFields = schema.NewSet(KindMember,
	schema.Field{LogicalName: "id", ReadOnly: true},
	schema.Field{LogicalName: "unique_email_id", ReadOnly: true},
	schema.Field{LogicalName: "email_type"},
	schema.Field{LogicalName: "email_address"},
	schema.Field{LogicalName: "status"},
	schema.Field{LogicalName: "firstname", RemoteName: "FNAME", Parent: "merge_fields", Placement: schema.NestedScalar},
	schema.Field{LogicalName: "lastname", RemoteName: "LNAME", Parent: "merge_fields", Placement: schema.NestedScalar},
	schema.Field{LogicalName: "ip_signup"},
	schema.Field{LogicalName: "timestamp_signup", Type: schema.DateTime},
	schema.Field{LogicalName: "ip_opt"},
	schema.Field{LogicalName: "timestamp_opt", Type: schema.DateTime},
	schema.Field{LogicalName: "member_rating", Type: schema.Integer, ReadOnly: true},
	schema.Field{LogicalName: "last_changed", Type: schema.DateTime, ReadOnly: true},
	schema.Field{LogicalName: "language"},
	schema.Field{LogicalName: "vip", Type: schema.Boolean},
	schema.Field{LogicalName: "email_client", ReadOnly: true},
	schema.Field{LogicalName: "source", ReadOnly: true},
	schema.Field{LogicalName: "tags", RemoteName: "name", Parent: "tags", Placement: schema.NestedArray, Type: schema.StringArray},
)

var listFields = schema.NewSet(KindList,
	schema.Field{LogicalName: "id", ReadOnly: true},
	schema.Field{LogicalName: "name"},
	schema.Field{LogicalName: "member_count", Parent: "stats", Placement: schema.NestedScalar, Type: schema.Integer, ReadOnly: true},
	schema.Field{LogicalName: "date_created", Type: schema.DateTime, ReadOnly: true},
)

// Kinds lists the supported resource kinds.
func Kinds() []string {
	return []string{KindList, KindMember}
}

// LookupRegistry returns the descriptor set for kind.
func LookupRegistry(kind string) (*schema.Set, bool) {
	switch strings.ToLower(kind) {
	case KindList:
		return listFields, true
	case KindMember:
		return memberFields, true
	}
	return nil, false
}

// Registry returns the descriptor set for kind and panics on unknown kinds.
func Registry(kind string) *schema.Set {
	set, ok := LookupRegistry(kind)
	if !ok {
		panic("mailchimp: unknown resource kind " + kind)
	}
	return set
}
