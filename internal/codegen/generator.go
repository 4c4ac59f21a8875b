package codegen

import (
	"io"
	"strings"
)

// Generator renders a unit model as Delphi source.
type Generator struct{}

// NewGenerator creates a generator.
func NewGenerator() *Generator { return &Generator{} }

// Generate writes the complete unit, interface and implementation, to w.
func (g *Generator) Generate(w io.Writer, unit Unit) error {
	cw := NewCodeWriter(w)

	g.writeHeader(cw, unit)
	g.writeInterface(cw, unit)
	g.writeImplementation(cw, unit)
	cw.Writeln(0, "end.")

	return cw.Flush()
}

func (g *Generator) writeHeader(cw *CodeWriter, unit Unit) {
	cw.Writelnf(0, "unit %s;", unit.Name)
	cw.Blank()
	if unit.RunToken != "" {
		cw.Writelnf(0, "// Generated by genphi, run %s. Do not edit.", unit.RunToken)
		cw.Blank()
	}
	if len(unit.Documentation) > 0 {
		for _, line := range unit.Documentation {
			cw.Writelnf(0, "// %s", line)
		}
		cw.Blank()
	}
}

func (g *Generator) writeInterface(cw *CodeWriter, unit Unit) {
	cw.Writeln(0, "interface")
	cw.Blank()

	if len(unit.UsesInterface) > 0 {
		cw.Writeln(0, "uses")
		for i, u := range unit.UsesInterface {
			sep := ","
			if i == len(unit.UsesInterface)-1 {
				sep = ";"
			}
			cw.Writeln(1, u+sep)
		}
		cw.Blank()
	}

	cw.Writeln(0, "type")

	if len(unit.Forwards) > 0 {
		cw.Writeln(1, "{$REGION 'Forward Declarations'}")
		for _, name := range unit.Forwards {
			cw.Writelnf(1, "%s = class;", name)
		}
		cw.Writeln(1, "{$ENDREGION}")
		cw.Blank()
	}

	if len(unit.Enums) > 0 {
		cw.Writeln(1, "{$REGION 'Enums'}")
		cw.Writeln(1, "{$SCOPEDENUMS ON}")
		for _, e := range unit.Enums {
			g.writeEnum(cw, e)
		}
		cw.Writeln(1, "{$SCOPEDENUMS OFF}")
		cw.Writeln(1, "{$ENDREGION}")
		cw.Blank()
	}

	if len(unit.Aliases) > 0 {
		cw.Writeln(1, "{$REGION 'Aliases'}")
		for _, a := range unit.Aliases {
			g.writeDocumentation(cw, 1, a.Documentation)
			cw.Writelnf(1, "// Schema type: %s", a.QualifiedName)
			if a.Pattern != "" {
				cw.Writelnf(1, "// Pattern: %s", a.Pattern)
			}
			cw.Writelnf(1, "%s = %s;", a.Name, a.TypeRepr)
		}
		cw.Writeln(1, "{$ENDREGION}")
		cw.Blank()
	}

	if len(unit.Unions) > 0 {
		cw.Writeln(1, "{$REGION 'Union Types'}")
		for _, u := range unit.Unions {
			g.writeUnion(cw, u)
		}
		cw.Writeln(1, "{$ENDREGION}")
		cw.Blank()
	}

	if len(unit.Classes) > 0 {
		cw.Writeln(1, "{$REGION 'Models'}")
		for _, c := range unit.Classes {
			g.writeClassDeclaration(cw, c)
		}
		cw.Writeln(1, "{$ENDREGION}")
		cw.Blank()
	}
}

func (g *Generator) writeEnum(cw *CodeWriter, e Enum) {
	g.writeDocumentation(cw, 1, e.Documentation)
	cw.Writelnf(1, "// Schema type: %s", e.QualifiedName)

	if !e.LinePerVariant {
		names := make([]string, 0, len(e.Values))
		for _, v := range e.Values {
			names = append(names, v.Name)
		}
		cw.Writelnf(1, "%s = (%s);", e.Name, strings.Join(names, ", "))
		cw.Blank()
		return
	}

	cw.Writelnf(1, "%s = (", e.Name)
	for i, v := range e.Values {
		g.writeDocumentation(cw, 2, v.Documentation)
		sep := ","
		if i == len(e.Values)-1 {
			sep = ""
		}
		cw.Writeln(2, v.Name+sep)
	}
	cw.Writeln(1, ");")
	cw.Blank()
}

func (g *Generator) writeUnion(cw *CodeWriter, u Union) {
	g.writeDocumentation(cw, 1, u.Documentation)
	cw.Writelnf(1, "// Schema type: %s", u.QualifiedName)
	cw.Writelnf(1, "%s = record", u.Name)

	names := make([]string, 0, len(u.Variants))
	for _, v := range u.Variants {
		names = append(names, v.Name)
	}
	cw.Writelnf(2, "type Variants = (%s);", strings.Join(names, ", "))
	cw.Blank()
	cw.Writeln(2, "case Variant: Variants of")
	for _, v := range u.Variants {
		cw.Writelnf(3, "Variants.%s: (%s: %s);", v.Name, v.Name, v.TypeRepr)
	}
	cw.Writeln(1, "end;")
	cw.Blank()
}

func (g *Generator) writeClassDeclaration(cw *CodeWriter, c Class) {
	g.writeDocumentation(cw, 1, c.Documentation)
	cw.Writelnf(1, "// Schema type: %s", c.QualifiedName)

	super := "TObject"
	if c.SuperType != "" {
		super = c.SuperType
	}
	cw.Writelnf(1, "%s = class(%s)", c.Name, super)

	if len(c.Fields) > 0 {
		cw.Writeln(1, "strict private")
		for _, f := range c.Fields {
			g.writeDocumentation(cw, 2, f.Documentation)
			cw.Writelnf(2, "%s: %s;", f.Name, f.TypeRepr)
		}
	}

	cw.Writeln(1, "public")
	for _, k := range c.Constants {
		cw.Writelnf(2, "const %s: %s = %s;", k.Name, k.TypeRepr, k.Value)
	}
	cw.Writeln(2, "constructor Create;")
	if c.NeedsDestructor {
		cw.Writeln(2, "destructor Destroy; override;")
	}
	if len(c.Fields) > 0 {
		cw.Blank()
		for _, f := range c.Fields {
			cw.Writelnf(2, "property %s: %s read %s write %s;",
				f.PropertyName, f.TypeRepr, f.Name, f.Name)
		}
	}
	cw.Writeln(1, "end;")
	cw.Blank()
}

func (g *Generator) writeImplementation(cw *CodeWriter, unit Unit) {
	cw.Writeln(0, "implementation")
	cw.Blank()

	if len(unit.Classes) > 0 {
		cw.Writeln(0, "{$REGION 'Models'}")
		for _, c := range unit.Classes {
			g.writeClassImplementation(cw, c)
		}
		cw.Writeln(0, "{$ENDREGION}")
		cw.Blank()
	}
}

func (g *Generator) writeClassImplementation(cw *CodeWriter, c Class) {
	cw.Writelnf(0, "constructor %s.Create;", c.Name)
	cw.Writeln(0, "begin")
	cw.Writeln(1, "inherited;")
	if len(c.Fields) > 0 {
		cw.Blank()
		for _, f := range c.Fields {
			cw.Writeln(1, f.Initializer)
		}
	}
	cw.Writeln(0, "end;")
	cw.Blank()

	if !c.NeedsDestructor {
		return
	}

	cw.Writelnf(0, "destructor %s.Destroy;", c.Name)
	cw.Writeln(0, "begin")
	for _, f := range c.Fields {
		if f.RequiresFree {
			cw.Writelnf(1, "%s.Free;", f.Name)
		}
	}
	cw.Blank()
	cw.Writeln(1, "inherited;")
	cw.Writeln(0, "end;")
	cw.Blank()
}

func (g *Generator) writeDocumentation(cw *CodeWriter, indent int, lines []string) {
	for _, line := range lines {
		cw.Writelnf(indent, "// %s", line)
	}
}
