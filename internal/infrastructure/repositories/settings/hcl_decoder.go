package settings

import (
	"errors"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/rios0rios0/repacktask/internal/domain/entities"
)

const (
	engineBlock = "engine"
	mergeBlock  = "merge"
)

// DecodeHCL decodes an HCL settings file made of optional "engine" and
// "merge" blocks whose attributes mirror the YAML keys:
//
//	engine {
//	  name    = "ilrepack"
//	  command = "mono tools/ILRepack.exe"
//	}
//
//	merge {
//	  target_kind  = "Dll"
//	  internalize  = true
//	  library_path = ["lib"]
//	}
func DecodeHCL(data []byte, filename string, target *entities.Settings) error {
	parser := hclparse.NewParser()

	file, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return errors.New(diags.Error())
	}

	content, diags := file.Body.Content(&hcl.BodySchema{
		Blocks: []hcl.BlockHeaderSchema{
			{Type: engineBlock},
			{Type: mergeBlock},
		},
	})
	if diags.HasErrors() {
		return errors.New(diags.Error())
	}

	for _, block := range content.Blocks {
		attrs, attrDiags := block.Body.JustAttributes()
		if attrDiags.HasErrors() {
			return errors.New(attrDiags.Error())
		}

		for name, attr := range attrs {
			value, valueDiags := attr.Expr.Value(&hcl.EvalContext{})
			if valueDiags.HasErrors() {
				return errors.New(valueDiags.Error())
			}

			var assignErr error
			switch block.Type {
			case engineBlock:
				assignErr = assignEngine(&target.Engine, name, value)
			case mergeBlock:
				assignErr = assignMerge(&target.Merge, name, value)
			}
			if assignErr != nil {
				return fmt.Errorf("%s: %w", attr.NameRange.String(), assignErr)
			}
		}
	}

	return nil
}

func assignEngine(target *entities.EngineSettings, name string, value cty.Value) error {
	switch name {
	case "name":
		return asString(value, &target.Name)
	case "command":
		return asString(value, &target.Command)
	default:
		return fmt.Errorf("unknown attribute %q in %s block", name, engineBlock)
	}
}

func assignMerge(target *entities.MergeSettings, name string, value cty.Value) error {
	switch name {
	case "target_kind":
		return asString(value, &target.TargetKind)
	case "internalize":
		return asBool(value, &target.Internalize)
	case "exclude_file":
		return asString(value, &target.ExcludeFile)
	case "attribute_file":
		return asString(value, &target.AttributeFile)
	case "key_file":
		return asString(value, &target.KeyFile)
	case "log":
		return asBool(value, &target.Log)
	case "log_file":
		return asString(value, &target.LogFile)
	case "closed":
		return asBool(value, &target.Closed)
	case "copy_attributes":
		return asBool(value, &target.CopyAttributes)
	case "debug_info":
		return asBool(value, &target.DebugInfo)
	case "xml_documentation":
		return asBool(value, &target.XMLDocumentation)
	case "parallel":
		return asBool(value, &target.Parallel)
	case "library_path":
		return asStrings(value, &target.LibraryPath)
	default:
		return fmt.Errorf("unknown attribute %q in %s block", name, mergeBlock)
	}
}

func asString(value cty.Value, target *string) error {
	if value.IsNull() || !value.IsKnown() || value.Type() != cty.String {
		return fmt.Errorf("expected a string, got %s", value.Type().FriendlyName())
	}
	*target = value.AsString()
	return nil
}

func asBool(value cty.Value, target *bool) error {
	if value.IsNull() || !value.IsKnown() || value.Type() != cty.Bool {
		return fmt.Errorf("expected a bool, got %s", value.Type().FriendlyName())
	}
	*target = value.True()
	return nil
}

func asStrings(value cty.Value, target *[]string) error {
	valueType := value.Type()
	if value.IsNull() || !value.IsKnown() || !(valueType.IsTupleType() || valueType.IsListType()) {
		return fmt.Errorf("expected a list of strings, got %s", valueType.FriendlyName())
	}

	var items []string
	for iterator := value.ElementIterator(); iterator.Next(); {
		_, element := iterator.Element()
		var item string
		if err := asString(element, &item); err != nil {
			return err
		}
		items = append(items, item)
	}
	*target = items
	return nil
}
