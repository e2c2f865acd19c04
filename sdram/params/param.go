package params

import "fmt"

// Param names one value of a parameter record. Most params are register
// values; the ones ending in Wait are settle times in microseconds.
type Param int

// Clock and PLL.
const (
	PllmInputDivider Param = iota
	PllmFeedbackDivider
	PllmPostDivider
	PllmSetupControl
	PllmKcpKvco
	PllmStableWait
	EmcClockSource
	EmcClockSourceDll

	// Pads and power.
	PmcDdrPwr
	PmcVddpSel
	PmcVddpSelWait
	PmcDdrCfg
	PmcNoIoPower
	PmcIoDpdReqWait
	PmcWeakBias
	EmcPmacroBgBiasCtrl0
	EmcPmacroVttgenCtrl0

	// EMC timings, latched by EMC_TIMING_CONTROL.
	EmcRc
	EmcRfc
	EmcRas
	EmcRp
	EmcR2w
	EmcW2r
	EmcR2p
	EmcW2p
	EmcRdRcd
	EmcWrRcd
	EmcRrd
	EmcRext
	EmcWdv
	EmcQuse
	EmcRdv
	EmcRefresh
	EmcBurstRefreshNum
	EmcPdex2Wr
	EmcPdex2Rd
	EmcTxsr
	EmcTcke
	EmcTfaw
	EmcTrpab
	EmcTclkStable
	EmcTclkStop
	EmcTrefBw
	EmcFbioCfg5
	EmcCfg
	EmcDbg
	EmcTimingControlWait

	// MC arbitration, latched by MC_TIMING_CONTROL.
	McEmemAdrCfg
	McEmemCfg
	McEmemArbCfg
	McEmemArbOutstandingReq
	McEmemArbTimingRcd
	McEmemArbTimingRp
	McEmemArbTimingRc
	McEmemArbTimingRas
	McEmemArbTimingFaw
	McEmemArbTimingRrd
	McEmemArbTimingR2w
	McEmemArbTimingW2r
	McEmemArbMisc0

	// Drive strength and auto calibration.
	EmcXm2CompPadCtrl
	EmcPmacroPadCfgCtrl
	EmcPmacroDataPadTxCtl
	EmcAutoCalConfig
	EmcAutoCalConfig2
	EmcAutoCalConfig3
	EmcAutoCalVrefSel0
	EmcAutoCalInterval
	EmcAutoCalWait

	// Power-up pin sequence.
	EmcPinGpioEn
	EmcPinGpio
	EmcPinResetWait
	EmcPinProgramWait
	EmcPinExtraWait

	// Mode register writes, stored as EMC_MRW command words.
	EmcMrw1
	EmcMrw2
	EmcMrw3
	EmcMrw11
	EmcMrw12
	EmcMrw13
	EmcMrw14
	EmcMrw22
	EmcMrwWait

	// ZQ calibration.
	EmcZcalInterval
	EmcZcalWaitCnt
	EmcZcalInitDev0
	EmcZcalInitDev1
	EmcZcalInitWait
	EmcZqCalLpddr4WarmBoot

	// Refresh and training.
	EmcDynSelfRefControl
	EmcTrainingCtrl

	NumParams
)

var paramNames = [NumParams]string{
	PllmInputDivider:        "PllmInputDivider",
	PllmFeedbackDivider:     "PllmFeedbackDivider",
	PllmPostDivider:         "PllmPostDivider",
	PllmSetupControl:        "PllmSetupControl",
	PllmKcpKvco:             "PllmKcpKvco",
	PllmStableWait:          "PllmStableWait",
	EmcClockSource:          "EmcClockSource",
	EmcClockSourceDll:       "EmcClockSourceDll",
	PmcDdrPwr:               "PmcDdrPwr",
	PmcVddpSel:              "PmcVddpSel",
	PmcVddpSelWait:          "PmcVddpSelWait",
	PmcDdrCfg:               "PmcDdrCfg",
	PmcNoIoPower:            "PmcNoIoPower",
	PmcIoDpdReqWait:         "PmcIoDpdReqWait",
	PmcWeakBias:             "PmcWeakBias",
	EmcPmacroBgBiasCtrl0:    "EmcPmacroBgBiasCtrl0",
	EmcPmacroVttgenCtrl0:    "EmcPmacroVttgenCtrl0",
	EmcRc:                   "EmcRc",
	EmcRfc:                  "EmcRfc",
	EmcRas:                  "EmcRas",
	EmcRp:                   "EmcRp",
	EmcR2w:                  "EmcR2w",
	EmcW2r:                  "EmcW2r",
	EmcR2p:                  "EmcR2p",
	EmcW2p:                  "EmcW2p",
	EmcRdRcd:                "EmcRdRcd",
	EmcWrRcd:                "EmcWrRcd",
	EmcRrd:                  "EmcRrd",
	EmcRext:                 "EmcRext",
	EmcWdv:                  "EmcWdv",
	EmcQuse:                 "EmcQuse",
	EmcRdv:                  "EmcRdv",
	EmcRefresh:              "EmcRefresh",
	EmcBurstRefreshNum:      "EmcBurstRefreshNum",
	EmcPdex2Wr:              "EmcPdex2Wr",
	EmcPdex2Rd:              "EmcPdex2Rd",
	EmcTxsr:                 "EmcTxsr",
	EmcTcke:                 "EmcTcke",
	EmcTfaw:                 "EmcTfaw",
	EmcTrpab:                "EmcTrpab",
	EmcTclkStable:           "EmcTclkStable",
	EmcTclkStop:             "EmcTclkStop",
	EmcTrefBw:               "EmcTrefBw",
	EmcFbioCfg5:             "EmcFbioCfg5",
	EmcCfg:                  "EmcCfg",
	EmcDbg:                  "EmcDbg",
	EmcTimingControlWait:    "EmcTimingControlWait",
	McEmemAdrCfg:            "McEmemAdrCfg",
	McEmemCfg:               "McEmemCfg",
	McEmemArbCfg:            "McEmemArbCfg",
	McEmemArbOutstandingReq: "McEmemArbOutstandingReq",
	McEmemArbTimingRcd:      "McEmemArbTimingRcd",
	McEmemArbTimingRp:       "McEmemArbTimingRp",
	McEmemArbTimingRc:       "McEmemArbTimingRc",
	McEmemArbTimingRas:      "McEmemArbTimingRas",
	McEmemArbTimingFaw:      "McEmemArbTimingFaw",
	McEmemArbTimingRrd:      "McEmemArbTimingRrd",
	McEmemArbTimingR2w:      "McEmemArbTimingR2w",
	McEmemArbTimingW2r:      "McEmemArbTimingW2r",
	McEmemArbMisc0:          "McEmemArbMisc0",
	EmcXm2CompPadCtrl:       "EmcXm2CompPadCtrl",
	EmcPmacroPadCfgCtrl:     "EmcPmacroPadCfgCtrl",
	EmcPmacroDataPadTxCtl:   "EmcPmacroDataPadTxCtl",
	EmcAutoCalConfig:        "EmcAutoCalConfig",
	EmcAutoCalConfig2:       "EmcAutoCalConfig2",
	EmcAutoCalConfig3:       "EmcAutoCalConfig3",
	EmcAutoCalVrefSel0:      "EmcAutoCalVrefSel0",
	EmcAutoCalInterval:      "EmcAutoCalInterval",
	EmcAutoCalWait:          "EmcAutoCalWait",
	EmcPinGpioEn:            "EmcPinGpioEn",
	EmcPinGpio:              "EmcPinGpio",
	EmcPinResetWait:         "EmcPinResetWait",
	EmcPinProgramWait:       "EmcPinProgramWait",
	EmcPinExtraWait:         "EmcPinExtraWait",
	EmcMrw1:                 "EmcMrw1",
	EmcMrw2:                 "EmcMrw2",
	EmcMrw3:                 "EmcMrw3",
	EmcMrw11:                "EmcMrw11",
	EmcMrw12:                "EmcMrw12",
	EmcMrw13:                "EmcMrw13",
	EmcMrw14:                "EmcMrw14",
	EmcMrw22:                "EmcMrw22",
	EmcMrwWait:              "EmcMrwWait",
	EmcZcalInterval:         "EmcZcalInterval",
	EmcZcalWaitCnt:          "EmcZcalWaitCnt",
	EmcZcalInitDev0:         "EmcZcalInitDev0",
	EmcZcalInitDev1:         "EmcZcalInitDev1",
	EmcZcalInitWait:         "EmcZcalInitWait",
	EmcZqCalLpddr4WarmBoot:  "EmcZqCalLpddr4WarmBoot",
	EmcDynSelfRefControl:    "EmcDynSelfRefControl",
	EmcTrainingCtrl:         "EmcTrainingCtrl",
}

func (p Param) String() string {
	if p < 0 || p >= NumParams {
		return fmt.Sprintf("Param(%d)", int(p))
	}

	return paramNames[p]
}

// IsWait tells if the param is a settle time rather than a register value.
func (p Param) IsWait() bool {
	switch p {
	case PllmStableWait, PmcVddpSelWait, PmcIoDpdReqWait,
		EmcTimingControlWait, EmcAutoCalWait, EmcPinResetWait,
		EmcPinProgramWait, EmcPinExtraWait, EmcMrwWait, EmcZcalInitWait:
		return true
	}

	return false
}

// MRW builds an EMC_MRW command word that writes data into mode register mr
// of both devices.
func MRW(mr, data uint8) uint32 {
	return uint32(mr)<<16 | uint32(data)
}
