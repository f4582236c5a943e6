package gopinotdb

import (
	"fmt"
	"net"
	"net/http"
	"net/url"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/samber/lo"
)

const (
	defaultHost                      = "localhost"
	defaultPort                      = 8099
	defaultScheme                    = "http"
	defaultPath                      = "/query/sql"
	defaultAcceptableRespondFraction = -1.0

	dsnScheme      = "pinot"
	dsnSchemeHTTPS = "pinot+https"
)

// ConfigBool is a boolean option that distinguishes "not set" from false.
type ConfigBool uint8

const (
	configBoolNotSet ConfigBool = iota
	// ConfigBoolTrue represents true for the config field
	ConfigBoolTrue
	// ConfigBoolFalse represents false for the config field
	ConfigBoolFalse
)

// Config is the set of configuration options of a connection.
type Config struct {
	Host   string `mapstructure:"host"`   // Broker host (default: localhost)
	Port   int    `mapstructure:"port"`   // Broker port (default: 8099)
	Scheme string `mapstructure:"scheme"` // http or https (default: http)
	Path   string `mapstructure:"path"`   // Query endpoint path (default: /query/sql)

	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	// KeyringService is the OS keyring service the password is read from when
	// Password is empty.
	KeyringService string `mapstructure:"keyring_service"`

	// Timeout is the per-request deadline. 0 means no timeout.
	Timeout time.Duration `mapstructure:"timeout"`
	// ExtraRequestHeaders are added to every request.
	ExtraRequestHeaders map[string]string `mapstructure:"extra_request_headers"`
	// PreserveTypes appends OPTION(preserveType='true') to every query.
	PreserveTypes bool `mapstructure:"preserve_types"`
	// IgnoreExceptionErrorCodes lists the broker exception codes that do not fail a query.
	IgnoreExceptionErrorCodes []int `mapstructure:"ignore_exception_error_codes"`
	// AcceptableRespondFraction is the partial response tolerance. nil means
	// -1, every queried server must respond; 0 disables the check.
	AcceptableRespondFraction *float64 `mapstructure:"acceptable_respond_fraction"`
	// UseMultistageEngine runs queries on the multi-stage query engine.
	UseMultistageEngine bool `mapstructure:"use_multistage_engine"`
	// QueryOptions are sent with every query as queryOptions.
	QueryOptions map[string]string `mapstructure:"query_options"`

	// VerifySSL verifies the broker certificate (default: true).
	VerifySSL ConfigBool `mapstructure:"verify_ssl"`
	// Debug logs requests and responses at debug level.
	Debug bool `mapstructure:"debug"`
	// ClientConfigFile is a JSON file configuring the driver logging.
	ClientConfigFile string `mapstructure:"client_config_file"`

	// HTTPClient is a caller owned client. The connection never closes it.
	HTTPClient *http.Client `mapstructure:"-"`
}

// NewConfig returns a Config with the default values filled in.
func NewConfig() *Config {
	cfg := &Config{}
	fillMissingConfigParameters(cfg)
	return cfg
}

func fillMissingConfigParameters(cfg *Config) {
	if strings.TrimSpace(cfg.Host) == "" {
		cfg.Host = defaultHost
	}
	if cfg.Port == 0 {
		cfg.Port = defaultPort
	}
	if cfg.Scheme == "" {
		cfg.Scheme = defaultScheme
	}
	if cfg.Path == "" {
		cfg.Path = defaultPath
	}
	if !strings.HasPrefix(cfg.Path, "/") {
		cfg.Path = "/" + cfg.Path
	}
	if cfg.VerifySSL == configBoolNotSet {
		cfg.VerifySSL = ConfigBoolTrue
	}
}

func validateConfig(cfg *Config) error {
	if cfg.Scheme != "http" && cfg.Scheme != "https" {
		return invalidConfigValue("scheme", cfg.Scheme)
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return invalidConfigValue("port", cfg.Port)
	}
	if cfg.Timeout < 0 {
		return invalidConfigValue("timeout", cfg.Timeout)
	}
	return nil
}

func invalidConfigValue(name string, value any) *PinotError {
	return &PinotError{
		Number:      ErrCodeInvalidConfigValue,
		Kind:        KindInterface,
		Message:     errMsgInvalidConfigValue,
		MessageArgs: []interface{}{name, value},
	}
}

// brokerURL is the query endpoint.
func (cfg *Config) brokerURL() string {
	return cfg.baseURL() + cfg.Path
}

func (cfg *Config) baseURL() string {
	return cfg.Scheme + "://" + net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
}

// joinedQueryOptions renders the query options as k=v pairs joined with ';',
// sorted by key. useMultistageEngine is added when enabled.
func (cfg *Config) joinedQueryOptions() string {
	options := make(map[string]string, len(cfg.QueryOptions)+1)
	for k, v := range cfg.QueryOptions {
		options[k] = v
	}
	if cfg.UseMultistageEngine {
		options["useMultistageEngine"] = "true"
	}
	return joinPairs(options, ";")
}

func joinPairs(pairs map[string]string, sep string) string {
	keys := lo.Keys(pairs)
	sort.Strings(keys)
	return strings.Join(lo.Map(keys, func(k string, _ int) string {
		return k + "=" + pairs[k]
	}), sep)
}

// DSN constructs a DSN for the Pinot driver.
func DSN(cfg *Config) (string, error) {
	c := *cfg
	fillMissingConfigParameters(&c)
	if err := validateConfig(&c); err != nil {
		return "", err
	}
	u := &url.URL{
		Scheme: dsnScheme,
		Host:   net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:   c.Path,
	}
	if c.Scheme == "https" {
		u.Scheme = dsnSchemeHTTPS
	}
	switch {
	case c.Username != "" && c.Password != "":
		u.User = url.UserPassword(c.Username, c.Password)
	case c.Username != "":
		u.User = url.User(c.Username)
	}

	params := url.Values{}
	if c.KeyringService != "" {
		params.Add("keyring_service", c.KeyringService)
	}
	if c.Timeout > 0 {
		params.Add("timeout", c.Timeout.String())
	}
	if len(c.ExtraRequestHeaders) > 0 {
		params.Add("extra_request_headers", joinPairs(c.ExtraRequestHeaders, ","))
	}
	if c.PreserveTypes {
		params.Add("preserve_types", "true")
	}
	if len(c.IgnoreExceptionErrorCodes) > 0 {
		params.Add("ignore_exception_error_codes", strings.Join(lo.Map(c.IgnoreExceptionErrorCodes, func(code int, _ int) string {
			return strconv.Itoa(code)
		}), ","))
	}
	if c.AcceptableRespondFraction != nil {
		params.Add("acceptable_respond_fraction", strconv.FormatFloat(*c.AcceptableRespondFraction, 'g', -1, 64))
	}
	if c.UseMultistageEngine {
		params.Add("use_multistage_engine", "true")
	}
	if len(c.QueryOptions) > 0 {
		params.Add("query_options", joinPairs(c.QueryOptions, ";"))
	}
	if c.VerifySSL == ConfigBoolFalse {
		params.Add("verify_ssl", "false")
	}
	if c.Debug {
		params.Add("debug", "true")
	}
	if c.ClientConfigFile != "" {
		params.Add("client_config_file", c.ClientConfigFile)
	}
	u.RawQuery = params.Encode()
	return u.String(), nil
}

// ParseDSN parses the DSN string to a Config.
//
//	[pinot[+https]://][user[:password]@]host[:port][/path][?option=value&...]
func ParseDSN(dsn string) (*Config, error) {
	if !strings.Contains(dsn, "://") {
		dsn = dsnScheme + "://" + dsn
	}
	u, err := url.Parse(dsn)
	if err != nil {
		return nil, invalidDSN(err)
	}
	cfg := &Config{Path: u.Path}
	switch u.Scheme {
	case dsnScheme, "http":
		cfg.Scheme = "http"
	case dsnSchemeHTTPS, "https":
		cfg.Scheme = "https"
	default:
		return nil, invalidDSN(fmt.Errorf("unsupported scheme %q", u.Scheme))
	}
	cfg.Host = u.Hostname()
	if port := u.Port(); port != "" {
		if cfg.Port, err = strconv.Atoi(port); err != nil {
			return nil, invalidDSN(err)
		}
	}
	if u.User != nil {
		cfg.Username = u.User.Username()
		cfg.Password, _ = u.User.Password()
	}

	options := make(map[string]interface{})
	for key, values := range u.Query() {
		options[key] = values[len(values)-1]
	}
	if err = decodeConfigOptions(cfg, options); err != nil {
		return nil, err
	}
	fillMissingConfigParameters(cfg)
	if err = validateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func invalidDSN(err error) *PinotError {
	return (&PinotError{
		Number:      ErrCodeInvalidDSN,
		Kind:        KindInterface,
		Message:     errMsgInvalidDSN,
		MessageArgs: []interface{}{err},
	}).withCause(err)
}

// decodeConfigOptions decodes snake_case options, from a DSN query or a TOML
// table, onto cfg. Unknown options are logged and ignored.
func decodeConfigOptions(cfg *Config, options map[string]interface{}) error {
	options, err := splitPairOptions(options)
	if err != nil {
		return err
	}
	var metadata mapstructure.Metadata
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			durationHookFunc(),
			errorCodesHookFunc(),
			configBoolHookFunc(),
		),
		Metadata:         &metadata,
		Result:           cfg,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	if err = decoder.Decode(options); err != nil {
		return (&PinotError{
			Number:      ErrCodeInvalidConfigValue,
			Kind:        KindInterface,
			Message:     errMsgInvalidConfigValue,
			MessageArgs: []interface{}{"options", err},
		}).withCause(err)
	}
	for _, key := range metadata.Unused {
		logger.Warnf("ignoring unknown connection option %q", key)
	}
	return nil
}

// durationHookFunc accepts Go durations ("1m30s") and plain numbers of seconds.
func durationHookFunc() mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if t != reflect.TypeOf(time.Duration(0)) {
			return data, nil
		}
		switch v := data.(type) {
		case string:
			v = strings.TrimSpace(v)
			if v == "" || strings.EqualFold(v, "none") {
				return time.Duration(0), nil
			}
			if seconds, err := strconv.ParseFloat(v, 64); err == nil {
				return time.Duration(seconds * float64(time.Second)), nil
			}
			return time.ParseDuration(v)
		case int64:
			return time.Duration(v) * time.Second, nil
		case int:
			return time.Duration(v) * time.Second, nil
		case float64:
			return time.Duration(v * float64(time.Second)), nil
		}
		return data, nil
	}
}

// pairSeparators maps each key=value list option to its separator. Header
// values may contain ';' and query option values may contain ','.
var pairSeparators = map[string]string{
	"extra_request_headers": ",",
	"query_options":         ";",
}

// splitPairOptions returns a copy of options with the string form of every
// key=value list option replaced by a map.
func splitPairOptions(options map[string]interface{}) (map[string]interface{}, error) {
	out := make(map[string]interface{}, len(options))
	for key, value := range options {
		sep, isPairs := pairSeparators[key]
		s, isString := value.(string)
		if !isPairs || !isString {
			out[key] = value
			continue
		}
		pairs, err := parsePairs(s, sep)
		if err != nil {
			return nil, &PinotError{
				Number:      ErrCodeInvalidConfigValue,
				Kind:        KindInterface,
				Message:     errMsgInvalidConfigValue,
				MessageArgs: []interface{}{key, err},
			}
		}
		out[key] = pairs
	}
	return out, nil
}

func parsePairs(s, sep string) (map[string]string, error) {
	pairs := make(map[string]string)
	for _, field := range lo.Compact(strings.Split(s, sep)) {
		k, v, found := strings.Cut(field, "=")
		if !found || strings.TrimSpace(k) == "" {
			return nil, fmt.Errorf("expected key=value, got %q", field)
		}
		pairs[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return pairs, nil
}

// errorCodesHookFunc decodes "123,234" into a list of codes.
func errorCodesHookFunc() mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		s, ok := data.(string)
		if !ok || t != reflect.TypeOf([]int{}) {
			return data, nil
		}
		return parseErrorCodes(s)
	}
}

func parseErrorCodes(s string) ([]int, error) {
	var codes []int
	for _, field := range lo.Compact(strings.Split(s, ",")) {
		code, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			return nil, err
		}
		codes = append(codes, code)
	}
	return codes, nil
}

func configBoolHookFunc() mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if t != reflect.TypeOf(ConfigBoolTrue) {
			return data, nil
		}
		var b bool
		switch v := data.(type) {
		case bool:
			b = v
		case string:
			parsed, err := strconv.ParseBool(v)
			if err != nil {
				return nil, err
			}
			b = parsed
		default:
			return data, nil
		}
		if b {
			return ConfigBoolTrue, nil
		}
		return ConfigBoolFalse, nil
	}
}
