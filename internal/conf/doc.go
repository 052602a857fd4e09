// Package conf loads and validates runtime configuration.
//
// Configuration is read from a YAML file through viper, with a complete
// default for every key so the analyzer runs without any config file at
// all. Overridable surfaces include the detection rule tables, the cost
// rate table, the assumed drawing scale, and logging.
package conf
