package codegen

import "github.com/bierbaumtim/genphi/internal/model"

// TypeName maps a schema type name onto the Delphi type identifier:
// the T convention plus an optional caller-chosen prefix.
func TypeName(name, prefix string) string {
	return "T" + prefix + model.Capitalize(model.SanitizeName(name))
}

// FieldName maps a schema member name onto the backing field name.
func FieldName(name string) string {
	return "F" + model.Capitalize(model.SanitizeName(name))
}

// PropertyName maps a schema member name onto the public property name.
func PropertyName(name string) string {
	return model.Capitalize(model.SanitizeName(name))
}
