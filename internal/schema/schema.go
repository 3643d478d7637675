// Package schema declares the ordered field layout of each dashboard
// entity kind and coerces submitted drafts to the declared types before
// they reach a gateway.
package schema

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/rakasatria/folio/internal/models"
	"github.com/rakasatria/folio/internal/utils"
)

type FieldType string

const (
	TypeText     FieldType = "text"
	TypeEmail    FieldType = "email"
	TypeTel      FieldType = "tel"
	TypeURL      FieldType = "url"
	TypeDate     FieldType = "date"
	TypeNumber   FieldType = "number"
	TypeTextarea FieldType = "textarea"
	TypeCheckbox FieldType = "checkbox"
	TypeTags     FieldType = "tags"
	TypeFile     FieldType = "file"

	// name -> URL map, ex: {"github": "https://github.com/..."}
	TypeLinks FieldType = "links"
)

type Field struct {
	Name     string    `json:"name"`
	Type     FieldType `json:"type"`
	Label    string    `json:"label"`
	Required bool      `json:"required"`
}

// Form is the ordered field schema for one entity kind, plus an optional
// kind-specific check run after per-field coercion.
type Form struct {
	Kind   string  `json:"kind"`
	Fields []Field `json:"fields"`

	check func(draft map[string]any) error
}

var forms = map[string]Form{
	"projects": {
		Kind: "projects",
		Fields: []Field{
			{Name: "title", Type: TypeText, Label: "Title", Required: true},
			{Name: "description", Type: TypeTextarea, Label: "Description", Required: true},
			{Name: "image_url", Type: TypeFile, Label: "Image"},
			{Name: "tags", Type: TypeTags, Label: "Tags"},
			{Name: "link", Type: TypeURL, Label: "Link"},
			{Name: "is_featured", Type: TypeCheckbox, Label: "Featured"},
		},
	},
	"personal_info": {
		Kind: "personal_info",
		Fields: []Field{
			{Name: "name", Type: TypeText, Label: "Name", Required: true},
			{Name: "title", Type: TypeText, Label: "Title", Required: true},
			{Name: "description", Type: TypeTextarea, Label: "About"},
			{Name: "email", Type: TypeEmail, Label: "Email", Required: true},
			{Name: "phone", Type: TypeTel, Label: "Phone"},
			{Name: "whatsapp", Type: TypeTel, Label: "WhatsApp"},
			{Name: "location", Type: TypeText, Label: "Location"},
			{Name: "avatar_url", Type: TypeFile, Label: "Avatar"},
			{Name: "resume_url", Type: TypeFile, Label: "Resume"},
			{Name: "social_links", Type: TypeLinks, Label: "Social links"},
		},
	},
	"skills": {
		Kind: "skills",
		Fields: []Field{
			{Name: "title", Type: TypeText, Label: "Title", Required: true},
			{Name: "description", Type: TypeTextarea, Label: "Description"},
			{Name: "icon", Type: TypeText, Label: "Icon", Required: true},
			{Name: "technologies", Type: TypeTags, Label: "Technologies"},
			{Name: "years", Type: TypeNumber, Label: "Years"},
			{Name: "proficiency", Type: TypeNumber, Label: "Proficiency", Required: true},
		},
		check: checkSkill,
	},
	"stats": {
		Kind: "stats",
		Fields: []Field{
			{Name: "title", Type: TypeText, Label: "Title", Required: true},
			{Name: "value", Type: TypeNumber, Label: "Value", Required: true},
			{Name: "suffix", Type: TypeText, Label: "Suffix"},
			{Name: "icon", Type: TypeText, Label: "Icon"},
		},
		check: checkStat,
	},
	"experiences": {
		Kind: "experiences",
		Fields: []Field{
			{Name: "role", Type: TypeText, Label: "Role", Required: true},
			{Name: "company", Type: TypeText, Label: "Company", Required: true},
			{Name: "period", Type: TypeText, Label: "Period"},
			{Name: "description", Type: TypeTextarea, Label: "Description"},
			{Name: "technologies", Type: TypeTags, Label: "Technologies"},
		},
	},
	"educations": {
		Kind: "educations",
		Fields: []Field{
			{Name: "degree", Type: TypeText, Label: "Degree", Required: true},
			{Name: "institution", Type: TypeText, Label: "Institution", Required: true},
			{Name: "period", Type: TypeText, Label: "Period"},
			{Name: "description", Type: TypeTextarea, Label: "Description"},
		},
	},
	"contacts": {
		Kind: "contacts",
		Fields: []Field{
			{Name: "name", Type: TypeText, Label: "Name", Required: true},
			{Name: "email", Type: TypeEmail, Label: "Email", Required: true},
			{Name: "phone", Type: TypeTel, Label: "Phone"},
			{Name: "subject", Type: TypeText, Label: "Subject"},
			{Name: "message", Type: TypeTextarea, Label: "Message", Required: true},
		},
	},
}

// Kinds lists every entity kind with a form schema, in dashboard tab order.
func Kinds() []string {
	return []string{
		"projects", "personal_info", "skills", "stats",
		"experiences", "educations", "contacts",
	}
}

func FormFor(kind string) (Form, bool) {
	f, ok := forms[kind]
	return f, ok
}

// CoerceDraft validates required fields and coerces every submitted
// value to its declared type. Unknown draft keys are dropped; absent
// checkboxes become false. The input draft is never mutated.
func (f Form) CoerceDraft(draft map[string]any) (map[string]any, error) {
	const op = "schema.CoerceDraft"

	out := make(map[string]any, len(f.Fields))
	for _, fld := range f.Fields {
		raw, present := draft[fld.Name]

		if !present || raw == nil {
			if fld.Type == TypeCheckbox {
				out[fld.Name] = false
				continue
			}
			if fld.Required {
				return nil, utils.E(utils.CodeInvalidArgument, op,
					fmt.Sprintf("%s: field %q is required", f.Kind, fld.Name), nil)
			}
			continue
		}

		v, err := coerceValue(fld.Type, raw)
		if err != nil {
			return nil, utils.E(utils.CodeInvalidArgument, op,
				fmt.Sprintf("%s: field %q: %v", f.Kind, fld.Name, err), nil)
		}

		if fld.Required && isEmpty(v) {
			return nil, utils.E(utils.CodeInvalidArgument, op,
				fmt.Sprintf("%s: field %q is required", f.Kind, fld.Name), nil)
		}
		out[fld.Name] = v
	}

	if f.check != nil {
		if err := f.check(out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func coerceValue(t FieldType, raw any) (any, error) {
	switch t {
	case TypeText, TypeEmail, TypeTel, TypeURL, TypeDate, TypeTextarea, TypeFile:
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("expected string, got %T", raw)
		}
		return s, nil

	case TypeNumber:
		switch n := raw.(type) {
		case float64:
			return int(n), nil
		case int:
			return n, nil
		case json.Number:
			i, err := n.Int64()
			if err != nil {
				return nil, err
			}
			return int(i), nil
		case string:
			i, err := strconv.Atoi(strings.TrimSpace(n))
			if err != nil {
				return nil, fmt.Errorf("not a number: %q", n)
			}
			return i, nil
		default:
			return nil, fmt.Errorf("expected number, got %T", raw)
		}

	case TypeCheckbox:
		b, ok := raw.(bool)
		if !ok {
			return nil, fmt.Errorf("expected bool, got %T", raw)
		}
		return b, nil

	case TypeLinks:
		switch m := raw.(type) {
		case map[string]string:
			return m, nil
		case map[string]any:
			links := make(map[string]string, len(m))
			for k, v := range m {
				s, ok := v.(string)
				if !ok {
					return nil, fmt.Errorf("expected string URL for %q, got %T", k, v)
				}
				links[k] = s
			}
			return links, nil
		default:
			return nil, fmt.Errorf("expected name->URL map, got %T", raw)
		}

	case TypeTags:
		switch l := raw.(type) {
		case []string:
			return NormalizeTags(l), nil
		case []any:
			tags := make([]string, 0, len(l))
			for _, v := range l {
				s, ok := v.(string)
				if !ok {
					return nil, fmt.Errorf("expected string tag, got %T", v)
				}
				tags = append(tags, s)
			}
			return NormalizeTags(tags), nil
		default:
			return nil, fmt.Errorf("expected string list, got %T", raw)
		}

	default:
		return nil, fmt.Errorf("unknown field type %q", t)
	}
}

func isEmpty(v any) bool {
	switch x := v.(type) {
	case string:
		return strings.TrimSpace(x) == ""
	case []string:
		return len(x) == 0
	default:
		return false
	}
}

func checkSkill(draft map[string]any) error {
	const op = "schema.checkSkill"

	if icon, ok := draft["icon"].(string); ok && !models.ValidSkillIcon(icon) {
		return utils.E(utils.CodeInvalidArgument, op,
			fmt.Sprintf("unknown icon %q", icon), nil)
	}
	if p, ok := draft["proficiency"].(int); ok && (p < 0 || p > 100) {
		return utils.E(utils.CodeInvalidArgument, op, "proficiency must be 0-100", nil)
	}
	if y, ok := draft["years"].(int); ok && y < 0 {
		return utils.E(utils.CodeInvalidArgument, op, "years must not be negative", nil)
	}
	return nil
}

func checkStat(draft map[string]any) error {
	if v, ok := draft["value"].(int); ok && v < 0 {
		return utils.E(utils.CodeInvalidArgument, "schema.checkStat",
			"value must not be negative", nil)
	}
	return nil
}
