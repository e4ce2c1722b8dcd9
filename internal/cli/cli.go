// Package cli provides the command line interface.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/leaperfx/lfx/internal/config"
	"github.com/leaperfx/lfx/internal/services/clipboard"
	"github.com/leaperfx/lfx/internal/token"
	"github.com/leaperfx/lfx/internal/tokenizer"
	"github.com/leaperfx/lfx/internal/translate"
	"github.com/leaperfx/lfx/internal/tree"
	"github.com/leaperfx/lfx/internal/utils"
)

const (
	versionFlagName        = "version"
	versionTemplate        = "lfx version: %s\n"
	versionFlagDescription = "display application version"
	defaultPath            = "."
	rootUse                = "lfx"
	rootShortDescription   = "lfx command line interface"
	rootLongDescription    = `lfx bundles the Leaper-Fx contract utilities.
It renders directory trees, issues and verifies admin access tokens, and translates HTML and PDF documents.
Use --version to print the application version.`

	treeUse              = "tree [path]"
	treeAlias            = "t"
	treeShortDescription = "display directory tree (" + treeAlias + ")"

	// treeLongDescription provides detailed help for the tree command.
	treeLongDescription = `Render the directory hierarchy below a path as text.
Hidden entries are excluded and siblings are ordered by case-insensitive name.`
	// treeUsageExample demonstrates tree command usage.
	treeUsageExample = `  # Render the current directory
  lfx tree

  # Render a project and copy the output to the clipboard
  lfx tree --copy ./cmd`

	copyFlagName        = "copy"
	copyFlagDescription = "copy the rendered tree to the system clipboard"
	// treeErrorMessageFormat reports a failed render on standard output.
	treeErrorMessageFormat = "Error generating directory tree: %v\n"
	// warningClipboardCopyFormat reports a failed clipboard copy.
	warningClipboardCopyFormat = "Warning: failed to copy tree to clipboard: %v\n"

	tokenUse              = "token"
	tokenShortDescription = "issue and verify admin access tokens"
	// tokenLongDescription provides detailed help for the token command group.
	tokenLongDescription = `Issue and verify the HS256 tokens guarding the contracts admin surface.
The signing secret is read from the ` + token.SecretEnvironmentVariable + ` environment variable.`

	tokenIssueUse              = "issue"
	tokenIssueShortDescription = "issue a signed access token"
	// tokenIssueUsageExample demonstrates token issue command usage.
	tokenIssueUsageExample = `  # Issue a token for a subject with the default lifetime
  lfx token issue --subject deploy-bot

  # Issue a one-hour token for a custom audience
  lfx token issue --subject deploy-bot --ttl 1h --audience reporting`

	tokenVerifyUse              = "verify <token>"
	tokenVerifyShortDescription = "verify a token and print its claims"
	// tokenVerifyUsageExample demonstrates token verify command usage.
	tokenVerifyUsageExample = `  # Verify a token and inspect its claims
  lfx token verify "$TOKEN"`

	subjectFlagName         = "subject"
	subjectFlagDescription  = "subject the token is issued for"
	ttlFlagName             = "ttl"
	ttlFlagDescription      = "token lifetime"
	issuerFlagName          = "issuer"
	issuerFlagDescription   = "issuer claim"
	audienceFlagName        = "audience"
	audienceFlagDescription = "audience claim"

	translateUse              = "translate [files...]"
	translateAlias            = "tr"
	translateShortDescription = "translate HTML and PDF documents (" + translateAlias + ")"

	// translateLongDescription provides detailed help for the translate command.
	translateLongDescription = `Translate HTML and PDF documents into a target language.
Translated copies are written next to their inputs with the language code appended to the file name.
The Gemini API key is read from the ` + translate.APIKeyEnvironmentVariable + ` environment variable.`
	// translateUsageExample demonstrates translate command usage.
	translateUsageExample = `  # Translate two documents into Persian
  lfx translate index.html report.pdf

  # Translate into Spanish without the translation memory
  lfx translate --language es --memory false index.html`

	languageFlagName        = "language"
	languageFlagDescription = "target language code"
	modelFlagName           = "model"
	modelFlagDescription    = "translation model"
	workersFlagName         = "workers"
	workersFlagDescription  = "number of documents translated concurrently"
	memoryFlagName          = "memory"
	memoryFlagDescription   = "reuse translations recorded by previous runs"
	tokensFlagName          = "tokens"
	tokensFlagDescription   = "include source token counts in the batch summary"
	fontFlagName            = "font"
	fontFlagDescription     = "TTF font file embedded into PDF output"
	// warningTranslationMemoryFormat reports a translation memory that could not be opened.
	warningTranslationMemoryFormat = "Warning: translation memory unavailable: %v\n"
	invalidWorkerCountMessage      = "worker count must be positive"

	configUse              = "config"
	configShortDescription = "manage lfx configuration"

	configInitUse              = "init"
	configInitShortDescription = "write a default configuration file"
	// configInitUsageExample demonstrates config init command usage.
	configInitUsageExample = `  # Write .lfx.yaml into the working directory
  lfx config init

  # Replace the global configuration
  lfx config init --global --force`

	globalFlagName                 = "global"
	globalFlagDescription          = "write the global configuration file"
	forceFlagName                  = "force"
	forceFlagDescription           = "overwrite an existing configuration file"
	configInitializedMessageFormat = "Configuration written to %s\n"
)

// Execute runs the lfx application.
func Execute() error {
	rootCommand := createRootCommand()
	rootCommand.SetArgs(foldToggleArguments(rootCommand, os.Args[1:]))
	return rootCommand.Execute()
}

// createRootCommand builds the root Cobra command.
func createRootCommand() *cobra.Command {
	var showVersion bool

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		SilenceUsage: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			return command.Help()
		},
		PersistentPreRun: func(command *cobra.Command, arguments []string) {
			if showVersion {
				fmt.Printf(versionTemplate, utils.GetApplicationVersion())
				os.Exit(0)
			}
		},
	}
	rootCommand.PersistentFlags().BoolVar(&showVersion, versionFlagName, false, versionFlagDescription)
	rootCommand.AddCommand(
		createTreeCommand(),
		createTokenCommand(),
		createTranslateCommand(),
		createConfigCommand(),
	)
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// loadConfiguration reads the merged application configuration for a command.
func loadConfiguration() (config.ApplicationConfiguration, error) {
	return config.LoadApplicationConfiguration(config.LoadOptions{})
}

// treeCommandOptions carries the resolved inputs of one tree invocation.
type treeCommandOptions struct {
	RootPath    string
	CopyEnabled bool
	Clipboard   clipboard.Copier
	Writer      io.Writer
}

// createTreeCommand returns the tree subcommand.
func createTreeCommand() *cobra.Command {
	var copyEnabled bool

	treeCommand := &cobra.Command{
		Use:     treeUse,
		Aliases: []string{treeAlias},
		Short:   treeShortDescription,
		Long:    treeLongDescription,
		Example: treeUsageExample,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			applicationConfiguration, configurationError := loadConfiguration()
			if configurationError != nil {
				return configurationError
			}
			if !command.Flags().Changed(copyFlagName) && applicationConfiguration.Tree.Copy != nil {
				copyEnabled = *applicationConfiguration.Tree.Copy
			}
			rootPath := defaultPath
			if len(arguments) == 1 {
				rootPath = arguments[0]
			}
			return runTreeCommand(treeCommandOptions{
				RootPath:    rootPath,
				CopyEnabled: copyEnabled,
				Clipboard:   clipboard.System{},
				Writer:      os.Stdout,
			})
		},
	}
	registerToggleFlag(treeCommand.Flags(), &copyEnabled, copyFlagName, false, copyFlagDescription)
	return treeCommand
}

// runTreeCommand renders the directory tree and writes it, or the failure
// message, to the output writer. A failed render is reported on standard
// output without failing the command so scripted callers keep receiving the
// historical message format and exit status.
func runTreeCommand(options treeCommandOptions) error {
	outputWriter := options.Writer
	if outputWriter == nil {
		outputWriter = os.Stdout
	}
	renderedTree, renderError := tree.Render(options.RootPath)
	if renderError != nil {
		fmt.Fprintf(outputWriter, treeErrorMessageFormat, renderError)
		return nil
	}
	fmt.Fprint(outputWriter, renderedTree)
	if options.CopyEnabled && options.Clipboard != nil {
		if copyError := options.Clipboard.Copy(renderedTree); copyError != nil {
			fmt.Fprintf(os.Stderr, warningClipboardCopyFormat, copyError)
		}
	}
	return nil
}

// createTokenCommand returns the token command group.
func createTokenCommand() *cobra.Command {
	tokenCommand := &cobra.Command{
		Use:   tokenUse,
		Short: tokenShortDescription,
		Long:  tokenLongDescription,
		RunE: func(command *cobra.Command, arguments []string) error {
			return command.Help()
		},
	}
	tokenCommand.AddCommand(
		createTokenIssueCommand(),
		createTokenVerifyCommand(),
	)
	return tokenCommand
}

// createTokenIssueCommand returns the token issue subcommand.
func createTokenIssueCommand() *cobra.Command {
	var subject string
	var issuer string
	var audience string
	var timeToLive time.Duration

	issueCommand := &cobra.Command{
		Use:     tokenIssueUse,
		Short:   tokenIssueShortDescription,
		Example: tokenIssueUsageExample,
		Args:    cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			applicationConfiguration, configurationError := loadConfiguration()
			if configurationError != nil {
				return configurationError
			}
			tokenConfiguration := applicationConfiguration.Token
			if !command.Flags().Changed(issuerFlagName) && tokenConfiguration.Issuer != "" {
				issuer = tokenConfiguration.Issuer
			}
			if !command.Flags().Changed(audienceFlagName) && tokenConfiguration.Audience != "" {
				audience = tokenConfiguration.Audience
			}
			if !command.Flags().Changed(ttlFlagName) && tokenConfiguration.TimeToLive != 0 {
				timeToLive = tokenConfiguration.TimeToLive
			}
			return runTokenIssue(token.IssueOptions{
				Subject:    subject,
				Issuer:     issuer,
				Audience:   audience,
				TimeToLive: timeToLive,
			}, os.Stdout)
		},
	}
	issueCommand.Flags().StringVar(&subject, subjectFlagName, "", subjectFlagDescription)
	issueCommand.Flags().StringVar(&issuer, issuerFlagName, token.DefaultIssuer, issuerFlagDescription)
	issueCommand.Flags().StringVar(&audience, audienceFlagName, token.DefaultAudience, audienceFlagDescription)
	issueCommand.Flags().DurationVar(&timeToLive, ttlFlagName, token.DefaultTimeToLive, ttlFlagDescription)
	_ = issueCommand.MarkFlagRequired(subjectFlagName)
	return issueCommand
}

// runTokenIssue mints a token and prints its compact form.
func runTokenIssue(options token.IssueOptions, outputWriter io.Writer) error {
	compactToken, issueError := token.Issue(options)
	if issueError != nil {
		return issueError
	}
	fmt.Fprintln(outputWriter, compactToken)
	return nil
}

// createTokenVerifyCommand returns the token verify subcommand.
func createTokenVerifyCommand() *cobra.Command {
	var issuer string
	var audience string

	verifyCommand := &cobra.Command{
		Use:     tokenVerifyUse,
		Short:   tokenVerifyShortDescription,
		Example: tokenVerifyUsageExample,
		Args:    cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			applicationConfiguration, configurationError := loadConfiguration()
			if configurationError != nil {
				return configurationError
			}
			tokenConfiguration := applicationConfiguration.Token
			if !command.Flags().Changed(issuerFlagName) && tokenConfiguration.Issuer != "" {
				issuer = tokenConfiguration.Issuer
			}
			if !command.Flags().Changed(audienceFlagName) && tokenConfiguration.Audience != "" {
				audience = tokenConfiguration.Audience
			}
			return runTokenVerify(arguments[0], token.VerifyOptions{
				Issuer:   issuer,
				Audience: audience,
			}, os.Stdout)
		},
	}
	verifyCommand.Flags().StringVar(&issuer, issuerFlagName, token.DefaultIssuer, issuerFlagDescription)
	verifyCommand.Flags().StringVar(&audience, audienceFlagName, token.DefaultAudience, audienceFlagDescription)
	return verifyCommand
}

// runTokenVerify checks a compact token and prints its claims as indented
// JSON. A verification failure fails the command so scripts can rely on the
// exit status.
func runTokenVerify(compactToken string, options token.VerifyOptions, outputWriter io.Writer) error {
	verifiedClaims, verifyError := token.Verify(compactToken, options)
	if verifyError != nil {
		return verifyError
	}
	claimsJSON, encodeError := json.MarshalIndent(verifiedClaims, "", "  ")
	if encodeError != nil {
		return fmt.Errorf("encode claims: %w", encodeError)
	}
	fmt.Fprintln(outputWriter, string(claimsJSON))
	return nil
}

// createTranslateCommand returns the translate subcommand.
func createTranslateCommand() *cobra.Command {
	var language string
	var model string
	var workerCount int
	var memoryEnabled bool
	var tokensEnabled bool
	var fontPath string

	translateCommand := &cobra.Command{
		Use:     translateUse,
		Aliases: []string{translateAlias},
		Short:   translateShortDescription,
		Long:    translateLongDescription,
		Example: translateUsageExample,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			applicationConfiguration, configurationError := loadConfiguration()
			if configurationError != nil {
				return configurationError
			}
			translateConfiguration := applicationConfiguration.Translate
			if !command.Flags().Changed(languageFlagName) && translateConfiguration.Language != "" {
				language = translateConfiguration.Language
			}
			if !command.Flags().Changed(modelFlagName) && translateConfiguration.Model != "" {
				model = translateConfiguration.Model
			}
			if !command.Flags().Changed(workersFlagName) && translateConfiguration.Workers != nil {
				workerCount = *translateConfiguration.Workers
			}
			if !command.Flags().Changed(memoryFlagName) && translateConfiguration.Memory != nil {
				memoryEnabled = *translateConfiguration.Memory
			}
			if !command.Flags().Changed(tokensFlagName) && translateConfiguration.Tokens != nil {
				tokensEnabled = *translateConfiguration.Tokens
			}
			if !command.Flags().Changed(fontFlagName) && translateConfiguration.Font != "" {
				fontPath = translateConfiguration.Font
			}
			if workerCount <= 0 {
				return errors.New(invalidWorkerCountMessage)
			}

			commandContext := context.Background()
			backend, backendError := translate.NewGeminiTranslator(commandContext, model, language)
			if backendError != nil {
				return backendError
			}
			var translator translate.Translator = backend
			if memoryEnabled {
				translationMemory, memoryError := translate.OpenMemory()
				if memoryError != nil {
					fmt.Fprintf(os.Stderr, warningTranslationMemoryFormat, memoryError)
				} else {
					defer translationMemory.Close()
					translator = translate.NewCachingTranslator(translationMemory, backend, language, model)
				}
			}

			var tokenCounter tokenizer.Counter
			if tokensEnabled {
				createdCounter, counterError := tokenizer.ForModel(model)
				if counterError != nil {
					return counterError
				}
				tokenCounter = createdCounter
			}

			return translate.Run(commandContext, arguments, translate.Options{
				Translator: translator,
				Language:   language,
				Workers:    workerCount,
				FontPath:   fontPath,
				Counter:    tokenCounter,
				Stdout:     os.Stdout,
			})
		},
	}
	translateCommand.Flags().StringVarP(&language, languageFlagName, "l", translate.DefaultLanguage, languageFlagDescription)
	translateCommand.Flags().StringVar(&model, modelFlagName, translate.DefaultModel, modelFlagDescription)
	translateCommand.Flags().IntVar(&workerCount, workersFlagName, translate.DefaultWorkerCount, workersFlagDescription)
	registerToggleFlag(translateCommand.Flags(), &memoryEnabled, memoryFlagName, true, memoryFlagDescription)
	registerToggleFlag(translateCommand.Flags(), &tokensEnabled, tokensFlagName, false, tokensFlagDescription)
	translateCommand.Flags().StringVar(&fontPath, fontFlagName, "", fontFlagDescription)
	return translateCommand
}

// createConfigCommand returns the config command group.
func createConfigCommand() *cobra.Command {
	configCommand := &cobra.Command{
		Use:   configUse,
		Short: configShortDescription,
		RunE: func(command *cobra.Command, arguments []string) error {
			return command.Help()
		},
	}
	configCommand.AddCommand(createConfigInitCommand())
	return configCommand
}

// createConfigInitCommand returns the config init subcommand.
func createConfigInitCommand() *cobra.Command {
	var writeGlobal bool
	var force bool

	initCommand := &cobra.Command{
		Use:     configInitUse,
		Short:   configInitShortDescription,
		Example: configInitUsageExample,
		Args:    cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			initTarget := config.InitTargetLocal
			if writeGlobal {
				initTarget = config.InitTargetGlobal
			}
			writtenPath, initializeError := config.InitializeConfiguration(config.InitOptions{
				Target: initTarget,
				Force:  force,
			})
			if initializeError != nil {
				return initializeError
			}
			fmt.Printf(configInitializedMessageFormat, writtenPath)
			return nil
		},
	}
	initCommand.Flags().BoolVar(&writeGlobal, globalFlagName, false, globalFlagDescription)
	initCommand.Flags().BoolVar(&force, forceFlagName, false, forceFlagDescription)
	return initCommand
}
