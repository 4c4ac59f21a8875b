package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSchema = `<?xml version="1.0"?>
<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema" targetNamespace="http://example.com/shop">
  <xs:element name="order" type="OrderType"/>
  <xs:simpleType name="StatusType">
    <xs:restriction base="xs:string">
      <xs:enumeration value="open"/>
      <xs:enumeration value="closed"/>
    </xs:restriction>
  </xs:simpleType>
  <xs:complexType name="OrderType">
    <xs:sequence>
      <xs:element name="status" type="StatusType"/>
      <xs:element name="note" type="xs:string" minOccurs="0"/>
    </xs:sequence>
  </xs:complexType>
</xs:schema>`

const testAPIDoc = `openapi: 3.0.0
info:
  title: Shop
  version: "1.0"
components:
  schemas:
    Order:
      type: object
      required: [id]
      properties:
        id:
          type: integer
        placed:
          type: string
          format: date-time
`

func writeTestFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func executeCommand(args ...string) (stdout, stderr string, err error) {
	cmd := NewRootCommand()
	outBuf := &bytes.Buffer{}
	errBuf := &bytes.Buffer{}
	cmd.SetOut(outBuf)
	cmd.SetErr(errBuf)
	cmd.SetArgs(args)

	err = cmd.Execute()
	return outBuf.String(), errBuf.String(), err
}

func TestGenerateFromSchemaFile(t *testing.T) {
	input := writeTestFile(t, "shop.xsd", testSchema)
	output := filepath.Join(t.TempDir(), "uShopModels.pas")

	stdout, _, err := executeCommand("generate", "-i", input, "-o", output)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Generated unit uShopModels")

	generated, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(generated), "unit uShopModels;")
	assert.Contains(t, string(generated), "TStatusType = (stOpen, stClosed);")
	assert.Contains(t, string(generated), "TOrderType = class(TObject)")
	assert.Contains(t, string(generated), "TDocument = class(TObject)")
}

func TestGenerateJSONOutput(t *testing.T) {
	input := writeTestFile(t, "shop.xsd", testSchema)
	output := filepath.Join(t.TempDir(), "uShopModels.pas")

	stdout, _, err := executeCommand("--format", "json", "generate", "-i", input, "-o", output)
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "ok", resp.Status)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok, "data payload is an object")
	assert.Equal(t, "uShopModels", data["unit_name"])
	assert.NotEmpty(t, data["run_token"])
}

func TestGenerateFromOpenAPIDocument(t *testing.T) {
	input := writeTestFile(t, "shop.yaml", testAPIDoc)
	output := filepath.Join(t.TempDir(), "uApiModels.pas")

	_, _, err := executeCommand("generate", "--source-format", "openapi",
		"--type-prefix", "Api", "-i", input, "-o", output)
	require.NoError(t, err)

	generated, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(generated), "unit uApiModels;")
	assert.Contains(t, string(generated), "TApiOrder = class(TObject)")
	assert.Contains(t, string(generated), "FPlaced: TDateTime;")
}

func TestGenerateUnknownSourceFormat(t *testing.T) {
	input := writeTestFile(t, "shop.xsd", testSchema)
	output := filepath.Join(t.TempDir(), "out.pas")

	stdout, _, err := executeCommand("generate", "--source-format", "wsdl", "-i", input, "-o", output)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, stdout, "unknown source format")
}

func TestGenerateMissingInputFile(t *testing.T) {
	output := filepath.Join(t.TempDir(), "out.pas")

	_, _, err := executeCommand("generate", "-i", "does-not-exist.xsd", "-o", output)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestGenerateTruncatedSchemaFails(t *testing.T) {
	input := writeTestFile(t, "broken.xsd",
		`<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema"><xs:complexType name="T">`)
	output := filepath.Join(t.TempDir(), "out.pas")

	stdout, _, err := executeCommand("generate", "-i", input, "-o", output)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, stdout, "UNEXPECTED_EOF")
}

func TestGenerateOpenAPIRejectsMultipleInputs(t *testing.T) {
	a := writeTestFile(t, "a.yaml", testAPIDoc)
	b := writeTestFile(t, "b.yaml", testAPIDoc)
	output := filepath.Join(t.TempDir(), "out.pas")

	_, _, err := executeCommand("generate", "--source-format", "openapi",
		"-i", a, "-i", b, "-o", output)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
