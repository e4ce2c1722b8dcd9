package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const toggleAcceptedValuesListing = "true, false, yes, no, on, off, 1, 0"

// toggleLiterals maps every accepted spelling of a toggle value to its
// boolean meaning. Lookups are performed on lowercased, trimmed input.
var toggleLiterals = func() map[string]bool {
	literals := make(map[string]bool, 12)
	for _, trueWord := range []string{"true", "t", "1", "yes", "y", "on"} {
		literals[trueWord] = true
	}
	for _, falseWord := range []string{"false", "f", "0", "no", "n", "off"} {
		literals[falseWord] = false
	}
	return literals
}()

// toggleValue is a pflag value accepting the relaxed literal set above. A
// bare occurrence of the flag, or an empty value, means true.
type toggleValue struct {
	name   string
	target *bool
}

func (value *toggleValue) Set(input string) error {
	literal := strings.ToLower(strings.TrimSpace(input))
	if literal == "" {
		*value.target = true
		return nil
	}
	meaning, known := toggleLiterals[literal]
	if !known {
		return fmt.Errorf("invalid boolean value %q for --%s; accepted values: %s", input, value.name, toggleAcceptedValuesListing)
	}
	*value.target = meaning
	return nil
}

func (value *toggleValue) String() string {
	return strconv.FormatBool(*value.target)
}

func (value *toggleValue) Type() string {
	return "bool"
}

// registerToggleFlag declares a toggle flag on flagSet bound to target.
func registerToggleFlag(flagSet *pflag.FlagSet, target *bool, name string, defaultValue bool, usage string) {
	*target = defaultValue
	flagSet.Var(&toggleValue{name: name, target: target}, name, usage)
	registeredFlag := flagSet.Lookup(name)
	registeredFlag.DefValue = strconv.FormatBool(defaultValue)
	registeredFlag.NoOptDefVal = "true"
}

// foldToggleArguments rewrites "--flag literal" pairs into "--flag=literal"
// so toggle flags accept a space-separated value. Only flags registered
// through registerToggleFlag participate, folding stops at the "--"
// terminator, and a following argument that is not a recognized literal
// stays positional.
func foldToggleArguments(command *cobra.Command, arguments []string) []string {
	toggleNames := map[string]struct{}{}
	collectToggleFlagNames(command, toggleNames)
	if len(toggleNames) == 0 {
		return arguments
	}
	folded := make([]string, 0, len(arguments))
	for argumentIndex := 0; argumentIndex < len(arguments); argumentIndex++ {
		argument := arguments[argumentIndex]
		if argument == "--" {
			folded = append(folded, arguments[argumentIndex:]...)
			break
		}
		folded = append(folded, argument)
		if !strings.HasPrefix(argument, "--") || strings.Contains(argument, "=") {
			continue
		}
		if _, isToggle := toggleNames[strings.TrimPrefix(argument, "--")]; !isToggle {
			continue
		}
		if argumentIndex+1 >= len(arguments) {
			continue
		}
		nextArgument := arguments[argumentIndex+1]
		if strings.HasPrefix(nextArgument, "-") {
			continue
		}
		if _, known := toggleLiterals[strings.ToLower(strings.TrimSpace(nextArgument))]; !known {
			continue
		}
		folded[len(folded)-1] = argument + "=" + nextArgument
		argumentIndex++
	}
	return folded
}

func collectToggleFlagNames(command *cobra.Command, names map[string]struct{}) {
	recordToggle := func(flag *pflag.Flag) {
		if _, isToggle := flag.Value.(*toggleValue); isToggle {
			names[flag.Name] = struct{}{}
		}
	}
	command.PersistentFlags().VisitAll(recordToggle)
	command.Flags().VisitAll(recordToggle)
	for _, childCommand := range command.Commands() {
		collectToggleFlagNames(childCommand, names)
	}
}
