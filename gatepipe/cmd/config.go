package cmd

import (
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/sarchlab/gatepipe/core"
	"github.com/sarchlab/gatepipe/sim"
)

func setDefaults() {
	d := core.DefaultConfig()

	viper.SetDefault("cpu.flush_clears_pc_plus4", d.FlushClearsPCPlus4)
	viper.SetDefault("cpu.stall_on_data_hazard", d.StallOnDataHazard)
	viper.SetDefault("cpu.resolve_jumps", d.ResolveJumps)
	viper.SetDefault("cpu.exception_vector", d.ExceptionVector)
	viper.SetDefault("cpu.data_memory_size", d.DataMemorySize)
	viper.SetDefault("cpu.instruction_memory_words", d.InstructionMemoryWords)
	viper.SetDefault("cpu.freq_mhz", 1000)

	viper.SetDefault("run.max_cycles", 64)
	viper.SetDefault("run.until_drained", true)

	viper.SetDefault("trace.csv", "")
	viper.SetDefault("trace.sqlite", "")
	viper.SetDefault("record.sqlite", "")

	viper.SetDefault("monitor.enable", false)
	viper.SetDefault("monitor.port", 0)
	viper.SetDefault("monitor.open_browser", false)

	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.file", "")
	viper.SetDefault("log.max_size_mb", 10)
	viper.SetDefault("log.max_backups", 3)
	viper.SetDefault("log.max_age_days", 28)
}

func mustBind(key string, flag *pflag.Flag) {
	if err := viper.BindPFlag(key, flag); err != nil {
		panic(err)
	}
}

// coreConfig reads the cpu section. Keys are read one by one so that bound
// flags override the config file.
func coreConfig() (core.Config, error) {
	cfg := core.Config{
		FlushClearsPCPlus4:     viper.GetBool("cpu.flush_clears_pc_plus4"),
		StallOnDataHazard:      viper.GetBool("cpu.stall_on_data_hazard"),
		ResolveJumps:           viper.GetBool("cpu.resolve_jumps"),
		ExceptionVector:        viper.GetUint32("cpu.exception_vector"),
		DataMemorySize:         viper.GetUint64("cpu.data_memory_size"),
		InstructionMemoryWords: viper.GetInt("cpu.instruction_memory_words"),
	}

	if cfg.DataMemorySize == 0 || cfg.DataMemorySize%4 != 0 {
		return cfg, fmt.Errorf(
			"cpu.data_memory_size must be a positive multiple of 4, got %d",
			cfg.DataMemorySize)
	}

	if cfg.InstructionMemoryWords <= 0 {
		return cfg, fmt.Errorf(
			"cpu.instruction_memory_words must be positive, got %d",
			cfg.InstructionMemoryWords)
	}

	return cfg, nil
}

func coreFreq() sim.Freq {
	return sim.Freq(viper.GetFloat64("cpu.freq_mhz")) * sim.MHz
}

// addCPUFlags adds the flags that override the cpu section.
func addCPUFlags(fs *pflag.FlagSet) {
	fs.Bool("stall", false, "stall on data hazards")
	fs.Bool("flush-clears-pc-plus4", false, "zero PC+4 when ID/EX is flushed")
	fs.Bool("resolve-jumps", true, "let J redirect the fetch")
	fs.Float64("freq-mhz", 1000, "clock frequency in MHz")
}

// bindCPUFlags binds the flags of addCPUFlags. It must run when the command
// runs, since commands share the keys.
func bindCPUFlags(fs *pflag.FlagSet) {
	mustBind("cpu.stall_on_data_hazard", fs.Lookup("stall"))
	mustBind("cpu.flush_clears_pc_plus4", fs.Lookup("flush-clears-pc-plus4"))
	mustBind("cpu.resolve_jumps", fs.Lookup("resolve-jumps"))
	mustBind("cpu.freq_mhz", fs.Lookup("freq-mhz"))
}
