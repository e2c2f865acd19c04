package hw

import "fmt"

// Base addresses of the blocks touched during bring-up.
const (
	TmrBase    uint32 = 0x60005000
	ClkRstBase uint32 = 0x60006000
	PmcBase    uint32 = 0x7000E400
	FuseBase   uint32 = 0x7000F800
	McBase     uint32 = 0x70019000
	EmcBase    uint32 = 0x7001B000
	Emc0Base   uint32 = 0x7001E000
	Emc1Base   uint32 = 0x7001F000
)

// Microsecond timer.
const (
	TimerUsCounter = TmrBase + 0x10
)

// Clock and reset controller.
const (
	ClkRstPllmBase      = ClkRstBase + 0x90
	ClkRstPllmMisc1     = ClkRstBase + 0x98
	ClkRstPllmMisc2     = ClkRstBase + 0x9C
	ClkRstClkSourceEmc  = ClkRstBase + 0x19C
	ClkRstRstDevHClr    = ClkRstBase + 0x30C
	ClkRstClkEnbHSet    = ClkRstBase + 0x328
	ClkRstClkSourceEmcD = ClkRstBase + 0x664
)

// PLLM_BASE fields.
const (
	PllmEnable    uint32 = 1 << 30
	PllmLock      uint32 = 1 << 27
	PllmDivMShift        = 0
	PllmDivNShift        = 8
	PllmDivPShift        = 20
)

// Clock enable and reset bits in the H bank.
const (
	ClkHMem uint32 = 1 << 0
	ClkHEmc uint32 = 1 << 25
)

// Power management controller.
const (
	PmcNoIoPower  = PmcBase + 0x44
	PmcDdrPwr     = PmcBase + 0xE8
	PmcIoDpd3Req  = PmcBase + 0x1B8
	PmcIoDpd4Req  = PmcBase + 0x1C0
	PmcVddpSel    = PmcBase + 0x1CC
	PmcDdrCfg     = PmcBase + 0x1D0
	PmcWeakBias   = PmcBase + 0x2C8
	PmcScratchLP0 = PmcBase + 0x600
)

// PMC deep power-down request codes.
const (
	PmcIoDpdReqOff uint32 = 1 << 30
)

// NumScratchLP0 is the number of retention scratch words reserved for the
// sleep snapshot.
const NumScratchLP0 = 32

// PmcScratch returns the address of LP0 scratch word n.
func PmcScratch(n int) uint32 {
	if n < 0 || n >= NumScratchLP0 {
		panic(fmt.Sprintf("scratch word %d out of range", n))
	}

	return PmcScratchLP0 + uint32(4*n)
}

// Fuses.
const (
	FuseReservedOdm4 = FuseBase + 0x1D8
)

// Memory controller.
const (
	McEmemCfg               = McBase + 0x50
	McEmemAdrCfg            = McBase + 0x54
	McEmemArbCfg            = McBase + 0x90
	McEmemArbOutstandingReq = McBase + 0x94
	McEmemArbTimingRcd      = McBase + 0x98
	McEmemArbTimingRp       = McBase + 0x9C
	McEmemArbTimingRc       = McBase + 0xA0
	McEmemArbTimingRas      = McBase + 0xA4
	McEmemArbTimingFaw      = McBase + 0xA8
	McEmemArbTimingRrd      = McBase + 0xAC
	McEmemArbTimingR2w      = McBase + 0xC0
	McEmemArbTimingW2r      = McBase + 0xC4
	McEmemArbMisc0          = McBase + 0xD8
	McTimingControl         = McBase + 0xFC
	McEmemCfgAccessCtrl     = McBase + 0x664
)

// External memory controller. The same offsets exist in the broadcast block
// (EmcBase) and in the per-channel blocks (Emc0Base, Emc1Base).
const (
	EmcIntStatusOff      uint32 = 0x0
	EmcEmcStatusOff      uint32 = 0x2B4
	EmcMrrOff            uint32 = 0xEC
	EmcAutoCalStatusOff  uint32 = 0x2AC
	EmcTrainingStatusOff uint32 = 0xE1C

	// Trimmer found by training, one per channel.
	EmcPmacroIbDdllLongDqsRank0Off uint32 = 0x660
)

// EMC registers addressed through the broadcast block.
const (
	EmcDbg                = EmcBase + 0x8
	EmcCfg                = EmcBase + 0xC
	EmcRefCtrl            = EmcBase + 0x20
	EmcSelfRef            = EmcBase + 0xE0
	EmcPin                = EmcBase + 0x24
	EmcTimingControl      = EmcBase + 0x28
	EmcRc                 = EmcBase + 0x2C
	EmcRfc                = EmcBase + 0x30
	EmcRas                = EmcBase + 0x34
	EmcRp                 = EmcBase + 0x38
	EmcR2w                = EmcBase + 0x3C
	EmcW2r                = EmcBase + 0x40
	EmcR2p                = EmcBase + 0x44
	EmcW2p                = EmcBase + 0x48
	EmcRdRcd              = EmcBase + 0x4C
	EmcWrRcd              = EmcBase + 0x50
	EmcRrd                = EmcBase + 0x54
	EmcRext               = EmcBase + 0x58
	EmcWdv                = EmcBase + 0x5C
	EmcQuse               = EmcBase + 0x60
	EmcRdv                = EmcBase + 0x6C
	EmcRefresh            = EmcBase + 0x70
	EmcBurstRefreshNum    = EmcBase + 0x74
	EmcPdex2Wr            = EmcBase + 0x78
	EmcPdex2Rd            = EmcBase + 0x7C
	EmcTxsr               = EmcBase + 0x90
	EmcTcke               = EmcBase + 0x94
	EmcTfaw               = EmcBase + 0x98
	EmcTrpab              = EmcBase + 0x9C
	EmcTclkStable         = EmcBase + 0xA0
	EmcTclkStop           = EmcBase + 0xA4
	EmcTrefBw             = EmcBase + 0xA8
	EmcFbioCfg5           = EmcBase + 0x104
	EmcMrw                = EmcBase + 0xE8
	EmcMrr                = EmcBase + EmcMrrOff
	EmcAutoCalConfig      = EmcBase + 0x2A4
	EmcAutoCalInterval    = EmcBase + 0x2A8
	EmcAutoCalStatus      = EmcBase + EmcAutoCalStatusOff
	EmcEmcStatus          = EmcBase + EmcEmcStatusOff
	EmcZcalInterval       = EmcBase + 0x2E0
	EmcZcalWaitCnt        = EmcBase + 0x2E4
	EmcZqCal              = EmcBase + 0x2EC
	EmcXm2CompPadCtrl     = EmcBase + 0x30C
	EmcDynSelfRefControl  = EmcBase + 0x3E0
	EmcAutoCalConfig2     = EmcBase + 0x458
	EmcAutoCalConfig3     = EmcBase + 0x45C
	EmcAutoCalVrefSel0    = EmcBase + 0x464
	EmcPmacroPadCfgCtrl   = EmcBase + 0xC30
	EmcPmacroBgBiasCtrl0  = EmcBase + 0xC88
	EmcPmacroVttgenCtrl0  = EmcBase + 0xC84
	EmcPmacroDataPadTxCtl = EmcBase + 0xC3C
	EmcTrainingCmd        = EmcBase + 0xE00
	EmcTrainingCtrl       = EmcBase + 0xE04
	EmcTrainingStatus     = EmcBase + EmcTrainingStatusOff
)

// EMC_PIN fields.
const (
	EmcPinGpioEnShift        = 16
	EmcPinGpioShift          = 12
	EmcPinReset       uint32 = 1 << 8
	EmcPinCke         uint32 = 1 << 0
)

// Command and status fields of the EMC.
const (
	EmcTimingUpdate       uint32 = 1 << 0
	EmcRefCtrlEnable      uint32 = 1 << 31
	EmcSelfRefEnable      uint32 = 1 << 0
	EmcAutoCalStart       uint32 = 1 << 31
	EmcAutoCalActive      uint32 = 1 << 31
	EmcZqCalStart         uint32 = 1 << 0
	EmcZqCalLatch         uint32 = 1 << 1
	EmcZqCalDevShift             = 30
	EmcTrainingStart      uint32 = 1 << 31
	EmcTrainingDone       uint32 = 1 << 0
	EmcTrainingError      uint32 = 1 << 1
	EmcStatusMrrDivld     uint32 = 1 << 20
	EmcMrrDevSelShift            = 30
	EmcMrrAddrShift              = 16
	EmcMrwDevSelShift            = 30
	EmcMrwAddrShift              = 16
	McTimingUpdate        uint32 = 1 << 0
	McEmemCfgAccessLocked uint32 = 1 << 0
)

// EmcChannel returns the address of a per-channel EMC register.
func EmcChannel(channel int, off uint32) uint32 {
	switch channel {
	case 0:
		return Emc0Base + off
	case 1:
		return Emc1Base + off
	default:
		panic(fmt.Sprintf("EMC channel %d does not exist", channel))
	}
}

var regNames = map[uint32]string{
	TimerUsCounter:          "TIMERUS_CNTR_1US",
	ClkRstPllmBase:          "CLK_RST_CONTROLLER_PLLM_BASE",
	ClkRstPllmMisc1:         "CLK_RST_CONTROLLER_PLLM_MISC1",
	ClkRstPllmMisc2:         "CLK_RST_CONTROLLER_PLLM_MISC2",
	ClkRstClkSourceEmc:      "CLK_RST_CONTROLLER_CLK_SOURCE_EMC",
	ClkRstClkSourceEmcD:     "CLK_RST_CONTROLLER_CLK_SOURCE_EMC_DLL",
	ClkRstRstDevHClr:        "CLK_RST_CONTROLLER_RST_DEV_H_CLR",
	ClkRstClkEnbHSet:        "CLK_RST_CONTROLLER_CLK_ENB_H_SET",
	PmcNoIoPower:            "APBDEV_PMC_NO_IOPOWER",
	PmcDdrPwr:               "APBDEV_PMC_DDR_PWR",
	PmcIoDpd3Req:            "APBDEV_PMC_IO_DPD3_REQ",
	PmcIoDpd4Req:            "APBDEV_PMC_IO_DPD4_REQ",
	PmcVddpSel:              "APBDEV_PMC_VDDP_SEL",
	PmcDdrCfg:               "APBDEV_PMC_DDR_CFG",
	PmcWeakBias:             "APBDEV_PMC_WEAK_BIAS",
	FuseReservedOdm4:        "FUSE_RESERVED_ODM4",
	McEmemCfg:               "MC_EMEM_CFG",
	McEmemAdrCfg:            "MC_EMEM_ADR_CFG",
	McEmemArbCfg:            "MC_EMEM_ARB_CFG",
	McEmemArbOutstandingReq: "MC_EMEM_ARB_OUTSTANDING_REQ",
	McEmemArbTimingRcd:      "MC_EMEM_ARB_TIMING_RCD",
	McEmemArbTimingRp:       "MC_EMEM_ARB_TIMING_RP",
	McEmemArbTimingRc:       "MC_EMEM_ARB_TIMING_RC",
	McEmemArbTimingRas:      "MC_EMEM_ARB_TIMING_RAS",
	McEmemArbTimingFaw:      "MC_EMEM_ARB_TIMING_FAW",
	McEmemArbTimingRrd:      "MC_EMEM_ARB_TIMING_RRD",
	McEmemArbTimingR2w:      "MC_EMEM_ARB_TIMING_R2W",
	McEmemArbTimingW2r:      "MC_EMEM_ARB_TIMING_W2R",
	McEmemArbMisc0:          "MC_EMEM_ARB_MISC0",
	McTimingControl:         "MC_TIMING_CONTROL",
	McEmemCfgAccessCtrl:     "MC_EMEM_CFG_ACCESS_CTRL",
	EmcDbg:                  "EMC_DBG",
	EmcCfg:                  "EMC_CFG",
	EmcRefCtrl:              "EMC_REFCTRL",
	EmcSelfRef:              "EMC_SELF_REF",
	EmcPin:                  "EMC_PIN",
	EmcTimingControl:        "EMC_TIMING_CONTROL",
	EmcRc:                   "EMC_RC",
	EmcRfc:                  "EMC_RFC",
	EmcRas:                  "EMC_RAS",
	EmcRp:                   "EMC_RP",
	EmcR2w:                  "EMC_R2W",
	EmcW2r:                  "EMC_W2R",
	EmcR2p:                  "EMC_R2P",
	EmcW2p:                  "EMC_W2P",
	EmcRdRcd:                "EMC_RD_RCD",
	EmcWrRcd:                "EMC_WR_RCD",
	EmcRrd:                  "EMC_RRD",
	EmcRext:                 "EMC_REXT",
	EmcWdv:                  "EMC_WDV",
	EmcQuse:                 "EMC_QUSE",
	EmcRdv:                  "EMC_RDV",
	EmcRefresh:              "EMC_REFRESH",
	EmcBurstRefreshNum:      "EMC_BURST_REFRESH_NUM",
	EmcPdex2Wr:              "EMC_PDEX2WR",
	EmcPdex2Rd:              "EMC_PDEX2RD",
	EmcTxsr:                 "EMC_TXSR",
	EmcTcke:                 "EMC_TCKE",
	EmcTfaw:                 "EMC_TFAW",
	EmcTrpab:                "EMC_TRPAB",
	EmcTclkStable:           "EMC_TCLKSTABLE",
	EmcTclkStop:             "EMC_TCLKSTOP",
	EmcTrefBw:               "EMC_TREFBW",
	EmcFbioCfg5:             "EMC_FBIO_CFG5",
	EmcMrw:                  "EMC_MRW",
	EmcMrr:                  "EMC_MRR",
	EmcAutoCalConfig:        "EMC_AUTO_CAL_CONFIG",
	EmcAutoCalInterval:      "EMC_AUTO_CAL_INTERVAL",
	EmcAutoCalStatus:        "EMC_AUTO_CAL_STATUS",
	EmcEmcStatus:            "EMC_EMC_STATUS",
	EmcZcalInterval:         "EMC_ZCAL_INTERVAL",
	EmcZcalWaitCnt:          "EMC_ZCAL_WAIT_CNT",
	EmcZqCal:                "EMC_ZQ_CAL",
	EmcXm2CompPadCtrl:       "EMC_XM2COMPPADCTRL",
	EmcDynSelfRefControl:    "EMC_DYN_SELF_REF_CONTROL",
	EmcAutoCalConfig2:       "EMC_AUTO_CAL_CONFIG2",
	EmcAutoCalConfig3:       "EMC_AUTO_CAL_CONFIG3",
	EmcAutoCalVrefSel0:      "EMC_AUTO_CAL_VREF_SEL_0",
	EmcPmacroPadCfgCtrl:     "EMC_PMACRO_PAD_CFG_CTRL",
	EmcPmacroBgBiasCtrl0:    "EMC_PMACRO_BG_BIAS_CTRL_0",
	EmcPmacroVttgenCtrl0:    "EMC_PMACRO_VTTGEN_CTRL_0",
	EmcPmacroDataPadTxCtl:   "EMC_PMACRO_DATA_PAD_TX_CTRL",
	EmcTrainingCmd:          "EMC_TRAINING_CMD",
	EmcTrainingCtrl:         "EMC_TRAINING_CTRL",
	EmcTrainingStatus:       "EMC_TRAINING_STATUS",

	EmcBase + EmcPmacroIbDdllLongDqsRank0Off: "EMC_PMACRO_IB_DDLL_LONG_DQS_RANK0_0",
}

// RegName returns the name of a register, or its address when unknown.
func RegName(addr uint32) string {
	if name, ok := regNames[addr]; ok {
		return name
	}

	switch {
	case addr >= PmcScratchLP0 && addr < PmcScratchLP0+4*NumScratchLP0:
		return fmt.Sprintf("APBDEV_PMC_SCRATCH_LP0_%d", (addr-PmcScratchLP0)/4)
	case addr >= Emc0Base && addr < Emc0Base+0x1000:
		return "EMC0_" + RegName(EmcBase+addr-Emc0Base)
	case addr >= Emc1Base && addr < Emc1Base+0x1000:
		return "EMC1_" + RegName(EmcBase+addr-Emc1Base)
	}

	return fmt.Sprintf("0x%08x", addr)
}
