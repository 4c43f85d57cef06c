package app

import (
	"context"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/robfig/cron/v3"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/process"
	"github.com/talkincode/toughstore/internal/service"
	"go.uber.org/zap"
)

var (
	systemCPUGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "toughstore_system_cpu_percent",
		Help: "Host CPU usage percent.",
	})
	systemMemGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "toughstore_system_mem_used_mbytes",
		Help: "Host memory in use, megabytes.",
	})
	processCPUGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "toughstore_process_cpu_percent",
		Help: "Store process CPU usage percent.",
	})
	processMemGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "toughstore_process_mem_mbytes",
		Help: "Store process resident memory, megabytes.",
	})
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

func (a *Application) initJob() {
	loc, _ := time.LoadLocation(a.appConfig.System.Location)
	a.sched = cron.New(cron.WithLocation(loc), cron.WithParser(cronParser))

	var err error
	_, err = a.sched.AddFunc("@every 30s", func() {
		go a.SchedSystemMonitorTask()
		go a.SchedProcessMonitorTask()
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	_, err = a.sched.AddFunc("@daily", func() {
		a.SchedPurgeStaleCarts()
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	a.sched.Start()
}

// SchedSystemMonitorTask system monitor
func (a *Application) SchedSystemMonitorTask() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	cpuuse, err := cpu.Percent(0, false)
	if err == nil && len(cpuuse) > 0 {
		systemCPUGauge.Set(cpuuse[0])
	}

	meminfo, err := mem.VirtualMemory()
	if err == nil {
		systemMemGauge.Set(float64(meminfo.Used / 1024 / 1024))
	}
}

// SchedProcessMonitorTask app process monitor
func (a *Application) SchedProcessMonitorTask() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return
	}

	cpuuse, err := p.CPUPercent()
	if err == nil {
		processCPUGauge.Set(cpuuse)
	}

	meminfo, err := p.MemoryInfo()
	if err == nil {
		processMemGauge.Set(float64(meminfo.RSS / 1024 / 1024))
	}
}

// SchedPurgeStaleCarts drops cart lines untouched for longer than the
// configured cart.PurgeDays setting.
func (a *Application) SchedPurgeStaleCarts() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	idays := a.GetSettingsInt64Value("cart", "PurgeDays")
	if idays == 0 {
		idays = 30
	}
	carts := service.NewCartService(a.gormDB)
	if err := carts.PurgeStale(context.Background(), time.Hour*24*time.Duration(idays)); err != nil {
		zap.S().Errorf("purge stale carts error %s", err.Error())
	}
}
